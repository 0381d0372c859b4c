package hclblueprint

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/element"
	"github.com/saltoio/salto-core/internal/parser"
	"github.com/saltoio/salto-core/internal/srcrange"
	"github.com/saltoio/salto-core/internal/value"
)

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "type", LabelNames: []string{"adapter", "name"}},
		{Type: "instance", LabelNames: []string{"adapter", "type", "name"}},
		{Type: "variable", LabelNames: []string{"name"}},
	},
}

var typeBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "settings"}},
	Blocks:     []hcl.BlockHeaderSchema{{Type: "field", LabelNames: []string{"name"}}},
}

var fieldBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type", Required: true},
		{Name: "optional"},
		{Name: "default"},
	},
}

var variableBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "value", Required: true}},
}

// Parser implements parser.Parser against the block grammar documented in
// this package's doc comment.
type Parser struct{}

// New returns a ready-to-use Parser. It carries no state: every call to
// Parse is independent.
func New() *Parser {
	return &Parser{}
}

// Parse implements parser.Parser.
func (p *Parser) Parse(buffer []byte, filename string) parser.Result {
	result := parser.Result{SourceMap: srcrange.SourceMap{}}

	hclFile, diags := hclparse.NewParser().ParseHCL(buffer, filename)
	result.Errors = append(result.Errors, diagsToErrors(diags)...)
	if hclFile == nil || diags.HasErrors() {
		return result
	}

	content, diags := hclFile.Body.Content(rootSchema)
	result.Errors = append(result.Errors, diagsToErrors(diags)...)
	if content == nil {
		return result
	}

	for _, block := range content.Blocks {
		var (
			el   element.Element
			rng  hcl.Range
			errs []parser.Error
		)
		switch block.Type {
		case "type":
			el, rng, errs = parseTypeBlock(block)
		case "instance":
			el, rng, errs = parseInstanceBlock(block)
		case "variable":
			el, rng, errs = parseVariableBlock(block)
		}
		result.Errors = append(result.Errors, errs...)
		if el == nil {
			continue
		}
		result.Elements = append(result.Elements, el)
		fullName := el.ElemID().FullName()
		result.SourceMap[fullName] = append(result.SourceMap[fullName], rng)
	}

	return result
}

func parseTypeBlock(block *hcl.Block) (element.Element, hcl.Range, []parser.Error) {
	adapter, name := block.Labels[0], block.Labels[1]
	id := elemid.NewTypeID(adapter, name)
	obj := element.NewObjectType(id)

	body, diags := block.Body.Content(typeBodySchema)
	errs := diagsToErrors(diags)

	if attr, ok := body.Attributes["settings"]; ok {
		v, d := attr.Expr.Value(nil)
		if d.HasErrors() {
			errs = append(errs, diagsToErrors(d)...)
		} else if !v.IsNull() && v.Type() == cty.Bool {
			obj.IsSettings = v.True()
		}
	}

	for _, fieldBlock := range body.Blocks {
		field, fieldErrs := parseFieldBlock(id, fieldBlock)
		errs = append(errs, fieldErrs...)
		obj.Fields[field.Name] = field
	}

	return obj, block.DefRange, errs
}

func parseFieldBlock(parentID elemid.ElemID, block *hcl.Block) (*element.Field, []parser.Error) {
	field := &element.Field{
		ParentID:    parentID,
		Name:        block.Labels[0],
		Annotations: map[string]value.Value{},
	}

	body, diags := block.Body.Content(fieldBodySchema)
	errs := diagsToErrors(diags)

	if attr, ok := body.Attributes["type"]; ok {
		v, d := attr.Expr.Value(nil)
		if d.HasErrors() {
			errs = append(errs, diagsToErrors(d)...)
		} else if v.IsNull() || v.Type() != cty.String {
			errs = append(errs, parser.Error{Subject: attr.Range, Detail: "field type must be a string naming \"adapter.typeName\""})
		} else if typeID, ok := parseTypeRefString(v.AsString()); ok {
			field.Type = element.PlaceholderTypeRef(typeID)
		} else {
			errs = append(errs, parser.Error{Subject: attr.Range, Detail: fmt.Sprintf("invalid type reference %q, want \"adapter.typeName\"", v.AsString())})
		}
	}

	if attr, ok := body.Attributes["optional"]; ok {
		v, d := attr.Expr.Value(nil)
		if d.HasErrors() {
			errs = append(errs, diagsToErrors(d)...)
		} else {
			field.Annotations[element.OptionalAnnotation] = ctyToValue(v)
		}
	}

	if attr, ok := body.Attributes["default"]; ok {
		v, d := attr.Expr.Value(nil)
		if d.HasErrors() {
			errs = append(errs, diagsToErrors(d)...)
		} else {
			field.Annotations[element.DefaultAnnotation] = ctyToValue(v)
		}
	}

	return field, errs
}

// parseTypeRefString splits "adapter.typeName" into the ElemID it names.
// The marker update type (elemid.IsUpdateMarkerType) is addressed this same
// way, e.g. "salesforce.update", with no dedicated syntax of its own.
func parseTypeRefString(s string) (elemid.ElemID, bool) {
	adapter, typeName, ok := strings.Cut(s, ".")
	if !ok || adapter == "" || typeName == "" {
		return elemid.ElemID{}, false
	}
	return elemid.NewTypeID(adapter, typeName), true
}

func parseInstanceBlock(block *hcl.Block) (element.Element, hcl.Range, []parser.Error) {
	adapter, typeName, name := block.Labels[0], block.Labels[1], block.Labels[2]
	id := elemid.NewInstanceID(adapter, typeName, name)
	typeRef := element.PlaceholderTypeRef(elemid.NewTypeID(adapter, typeName))
	inst := element.NewInstanceElement(id, typeRef)

	attrs, diags := block.Body.JustAttributes()
	errs := diagsToErrors(diags)

	for attrName, attr := range attrs {
		v, err := attrValue(attr)
		if err != nil {
			errs = append(errs, *err)
			continue
		}
		inst.Value[attrName] = v
	}

	return inst, block.DefRange, errs
}

func parseVariableBlock(block *hcl.Block) (element.Element, hcl.Range, []parser.Error) {
	name := block.Labels[0]
	id := elemid.NewVarID(name)
	variable := &element.Variable{ID: id, Value: value.Null()}

	body, diags := block.Body.Content(variableBodySchema)
	errs := diagsToErrors(diags)

	if attr, ok := body.Attributes["value"]; ok {
		v, err := attrValue(attr)
		if err != nil {
			errs = append(errs, *err)
		} else {
			variable.Value = v
		}
	}

	return variable, block.DefRange, errs
}

// attrValue evaluates attr as a literal first; an expression that fails to
// evaluate with a nil EvalContext (because it names another declaration,
// e.g. `ami = aws.instance.base.ami`) is reinterpreted as a reference
// traversal instead of being reported as an error.
func attrValue(attr *hcl.Attribute) (value.Value, *parser.Error) {
	v, diags := attr.Expr.Value(nil)
	if !diags.HasErrors() {
		return ctyToValue(v), nil
	}

	if traversal, travDiags := hcl.AbsTraversalForExpr(attr.Expr); !travDiags.HasErrors() {
		return value.Reference(value.NewReference(traversal)), nil
	}

	err := diagToError(diags[0])
	return value.Null(), &err
}
