package elemid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	testCases := []struct {
		name string
		id   ElemID
		want string
	}{
		{"type", NewTypeID("salesforce", "lead"), "salesforce.lead"},
		{"field", NewFieldID("salesforce", "lead", "name"), "salesforce.lead.field.name"},
		{"instance", NewInstanceID("salesforce", "lead", "myLead"), "salesforce.lead.instance.myLead"},
		{"annotation", NewAnnotationTypeID("salesforce", "lead", "required"), "salesforce.lead.annotation.required"},
		{"attr nested", NewAttrID("salesforce", "lead", "myLead", "owner", "id"), "salesforce.lead.attr.myLead.owner.id"},
		{"var", NewVarID("env"), "var.env"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.id.FullName())
			assert.Equal(t, tc.want, tc.id.String())
		})
	}
}

func TestEqual(t *testing.T) {
	a := NewFieldID("salesforce", "lead", "name")
	b := NewFieldID("salesforce", "lead", "name")
	c := NewFieldID("salesforce", "lead", "other")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestParent(t *testing.T) {
	field := NewFieldID("salesforce", "lead", "name")
	assert.True(t, field.Parent().Equal(NewTypeID("salesforce", "lead")))

	nested := NewAttrID("salesforce", "lead", "myLead", "owner", "id")
	assert.True(t, nested.Parent().Equal(NewAttrID("salesforce", "lead", "myLead", "owner")))

	typeID := NewTypeID("salesforce", "lead")
	assert.True(t, typeID.Parent().Equal(typeID))
}

func TestIsConfig(t *testing.T) {
	assert.True(t, NewInstanceID("salesforce", "salesforce", ConfigInstanceName).IsConfig())
	assert.False(t, NewInstanceID("salesforce", "lead", "myLead").IsConfig())
}

func TestNestingLevel(t *testing.T) {
	assert.Equal(t, 0, NewFieldID("salesforce", "lead", "name").NestingLevel())
	assert.Equal(t, 2, NewAttrID("salesforce", "lead", "myLead", "owner", "id").NestingLevel())
}

func TestIsUpdateMarkerType(t *testing.T) {
	assert.True(t, IsUpdateMarkerType(NewTypeID("salesforce", "update")))
	assert.False(t, IsUpdateMarkerType(NewTypeID("salesforce", "lead")))
}
