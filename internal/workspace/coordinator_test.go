package workspace

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltoio/salto-core/internal/blueprintedit"
	"github.com/saltoio/salto-core/internal/ctxlog"
	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/element"
	"github.com/saltoio/salto-core/internal/filelayer"
	"github.com/saltoio/salto-core/internal/parser"
	"github.com/saltoio/salto-core/internal/srcrange"
	"github.com/saltoio/salto-core/internal/value"
)

var configFieldPattern = regexp.MustCompile(`(uid|name)\s*=\s*"([^"]*)"`)

// testParser is a Parser test double. A per-filename override wins outright;
// otherwise a buffer naming the built-in salto.config instance is parsed
// into that instance so Init/Load round-trip without a real blueprint
// grammar.
type testParser struct {
	mu        sync.Mutex
	overrides map[string]parser.Result
}

func newTestParser() *testParser {
	return &testParser{overrides: map[string]parser.Result{}}
}

func (p *testParser) set(filename string, result parser.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overrides[filename] = result
}

func (p *testParser) Parse(buf []byte, filename string) parser.Result {
	p.mu.Lock()
	r, ok := p.overrides[filename]
	p.mu.Unlock()
	if ok {
		return r
	}
	if strings.Contains(string(buf), `instance "salto" "config"`) {
		return parseFakeConfig(buf)
	}
	return parser.Result{}
}

func parseFakeConfig(buf []byte) parser.Result {
	fields := map[string]string{}
	for _, m := range configFieldPattern.FindAllSubmatch(buf, -1) {
		fields[string(m[1])] = string(m[2])
	}
	id := elemid.NewInstanceID(ConfigAdapter, ConfigTypeName, elemid.ConfigInstanceName)
	inst := element.NewInstanceElement(id, element.ResolvedTypeRef(saltoConfigType()))
	inst.Value["uid"] = value.String(fields["uid"])
	inst.Value["name"] = value.String(fields["name"])
	return parser.Result{Elements: []element.Element{inst}}
}

func newTestCoordinator(t *testing.T, baseDir string, p parser.Parser) (*Coordinator, filelayer.FileLayer) {
	t.Helper()
	fl := filelayer.New(afero.NewMemMapFs())
	c := New(baseDir, fl, p, nil, slog.Default())
	return c, fl
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.Default())
}

func findByFullName(elements []element.Element, fullName string) element.Element {
	for _, e := range elements {
		if e.ElemID().FullName() == fullName {
			return e
		}
	}
	return nil
}

func TestCoordinator_InitCreatesConfigAndFlushes(t *testing.T) {
	c, fl := newTestCoordinator(t, "/ws", newTestParser())
	ctx := testContext()

	require.NoError(t, c.Init(ctx, "myworkspace"))

	state := c.State()
	configID := elemid.NewInstanceID(ConfigAdapter, ConfigTypeName, elemid.ConfigInstanceName)
	got := findByFullName(state.Elements, configID.FullName())
	require.NotNil(t, got)
	inst := got.(*element.InstanceElement)
	assert.Equal(t, "myworkspace", inst.Value["name"].Prim.AsString())
	assert.NotEmpty(t, inst.Value["uid"].Prim.AsString())

	exists, err := fl.Exists("/ws/salto.config.bp")
	require.NoError(t, err)
	assert.True(t, exists)

	credExists, err := fl.Exists("/ws/.salto/credentials")
	require.NoError(t, err)
	assert.True(t, credExists)

	assert.Empty(t, c.dirty)
}

func TestCoordinator_Init_ExistingWorkspace(t *testing.T) {
	c, fl := newTestCoordinator(t, "/ws", newTestParser())
	require.NoError(t, fl.WriteTextFile("/ws/salto.config.bp", "salto {}"))

	err := c.Init(testContext(), "myworkspace")
	require.Error(t, err)
	var existingErr *ExistingWorkspaceError
	require.ErrorAs(t, err, &existingErr)
	assert.Equal(t, "/ws", existingErr.Path)
}

func TestCoordinator_Init_NotAnEmptyWorkspace(t *testing.T) {
	c, fl := newTestCoordinator(t, "/ws", newTestParser())
	require.NoError(t, fl.Mkdirp("/ws/.salto"))

	err := c.Init(testContext(), "myworkspace")
	require.Error(t, err)
	var notEmptyErr *NotAnEmptyWorkspaceError
	require.ErrorAs(t, err, &notEmptyErr)
}

func TestCoordinator_Init_NotAnEmptyWorkspace_StateFile(t *testing.T) {
	c, fl := newTestCoordinator(t, "/ws", newTestParser())
	require.NoError(t, fl.WriteTextFile("/ws/state.json", "{}"))

	err := c.Init(testContext(), "myworkspace")
	require.Error(t, err)
	var notEmptyErr *NotAnEmptyWorkspaceError
	require.ErrorAs(t, err, &notEmptyErr)
}

func TestCoordinator_Load_DiscoversBlueprintsRecursively(t *testing.T) {
	p := newTestParser()
	c, fl := newTestCoordinator(t, "/ws", p)

	elemA := &element.PrimitiveType{ID: elemid.NewTypeID("adapterA", "t1"), Primitive: element.PrimitiveString}
	elemB := &element.PrimitiveType{ID: elemid.NewTypeID("adapterB", "t2"), Primitive: element.PrimitiveString}
	p.set("/ws/a.bp", parser.Result{Elements: []element.Element{elemA}})
	p.set("/ws/sub/b.bp", parser.Result{Elements: []element.Element{elemB}})

	require.NoError(t, fl.WriteTextFile("/ws/a.bp", "irrelevant"))
	require.NoError(t, fl.WriteTextFile("/ws/sub/b.bp", "irrelevant"))
	require.NoError(t, fl.WriteTextFile("/ws/readme.md", "not a blueprint"))
	require.NoError(t, fl.WriteTextFile("/ws/.hidden/c.bp", "should be skipped"))

	require.NoError(t, c.Load(testContext(), false))

	state := c.State()
	assert.Len(t, state.ParsedBlueprints, 2)
	assert.NotNil(t, findByFullName(state.Elements, "adapterA.t1"))
	assert.NotNil(t, findByFullName(state.Elements, "adapterB.t2"))
}

func TestCoordinator_SetBlueprints_FlushWritesFile(t *testing.T) {
	p := newTestParser()
	c, fl := newTestCoordinator(t, "/ws", p)
	require.NoError(t, fl.Mkdirp("/ws"))
	require.NoError(t, c.Load(testContext(), false))

	p.set("/ws/new.bp", parser.Result{})
	require.NoError(t, c.SetBlueprints(testContext(), map[string][]byte{"/ws/new.bp": []byte("hello")}))
	require.NoError(t, c.Flush(testContext()))

	content, err := fl.ReadTextFile("/ws/new.bp")
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
	assert.Empty(t, c.dirty)
}

func TestCoordinator_RemoveBlueprints_FlushDeletesFile(t *testing.T) {
	p := newTestParser()
	c, fl := newTestCoordinator(t, "/ws", p)

	p.set("/ws/rm.bp", parser.Result{})
	require.NoError(t, fl.WriteTextFile("/ws/rm.bp", "bye"))
	require.NoError(t, c.Load(testContext(), false))
	require.Contains(t, c.State().ParsedBlueprints, "/ws/rm.bp")

	require.NoError(t, c.RemoveBlueprints(testContext(), []string{"/ws/rm.bp"}))
	require.NoError(t, c.Flush(testContext()))

	exists, err := fl.Exists("/ws/rm.bp")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NotContains(t, c.State().ParsedBlueprints, "/ws/rm.bp")
}

func TestCoordinator_UpdateBlueprints_SplicesAndFlushes(t *testing.T) {
	p := newTestParser()
	c, fl := newTestCoordinator(t, "/ws", p)

	content := "type FOO bar"
	sourceMap := srcrange.SourceMap{
		"adapterA.t1": {{Filename: "/ws/a.bp", Start: srcrange.Pos{Byte: 5}, End: srcrange.Pos{Byte: 8}}},
	}
	elemA := &element.PrimitiveType{ID: elemid.NewTypeID("adapterA", "t1"), Primitive: element.PrimitiveString}
	p.set("/ws/a.bp", parser.Result{Elements: []element.Element{elemA}, SourceMap: sourceMap})
	require.NoError(t, fl.WriteTextFile("/ws/a.bp", content))
	require.NoError(t, c.Load(testContext(), false))

	change := blueprintedit.Change{ElemIDFullName: "adapterA.t1", Kind: blueprintedit.Modify, NewText: []byte("BAZ")}
	require.NoError(t, c.UpdateBlueprints(testContext(), []blueprintedit.Change{change}))
	require.NoError(t, c.Flush(testContext()))

	got, err := fl.ReadTextFile("/ws/a.bp")
	require.NoError(t, err)
	assert.Equal(t, "type BAZ bar", got)
}

func TestCoordinator_GetWorkspaceErrors_ProjectsParseError(t *testing.T) {
	p := newTestParser()
	c, fl := newTestCoordinator(t, "/ws", p)

	buffer := "oops rest"
	p.set("/ws/bad.bp", parser.Result{
		Errors: []parser.Error{{
			Subject: srcrange.Range{Filename: "/ws/bad.bp", Start: srcrange.Pos{Byte: 0}, End: srcrange.Pos{Byte: 4}},
			Detail:  "unexpected token",
		}},
	})
	require.NoError(t, fl.WriteTextFile("/ws/bad.bp", buffer))
	require.NoError(t, c.Load(testContext(), false))

	errs := c.GetWorkspaceErrors()
	require.Len(t, errs, 1)
	assert.Equal(t, SeverityError, errs[0].Severity)
	require.Len(t, errs[0].SourceFragments, 1)
	assert.Equal(t, "oops", string(errs[0].SourceFragments[0]))
}
