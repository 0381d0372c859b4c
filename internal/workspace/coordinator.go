package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/saltoio/salto-core/internal/blueprintedit"
	"github.com/saltoio/salto-core/internal/ctxlog"
	"github.com/saltoio/salto-core/internal/elemid"
	"github.com/saltoio/salto-core/internal/element"
	"github.com/saltoio/salto-core/internal/filelayer"
	"github.com/saltoio/salto-core/internal/parser"
	"github.com/saltoio/salto-core/internal/parsecache"
	"github.com/saltoio/salto-core/internal/srcrange"
	"github.com/saltoio/salto-core/internal/value"
)

// localStorageDirName and credentialsDirName are fixed relative to a
// workspace's local storage directory, itself fixed relative to base_dir.
const (
	localStorageDirName = ".salto"
	credentialsDirName  = "credentials"
	stateFilename       = "state.json"
)

// Coordinator is the Workspace Coordinator: it owns the authoritative
// State for one base directory and mediates every edit. A Coordinator has
// a single logical owner; callers MUST serialize calls to its mutating
// operations (Init, Load, SetBlueprints, RemoveBlueprints,
// UpdateBlueprints, Flush) themselves; the internal mutex below only
// prevents two such calls from interleaving their writes to State, it does
// not make overlapping calls individually correct.
type Coordinator struct {
	baseDir string
	files   filelayer.FileLayer
	parser  parser.Parser
	cache   parsecache.Cache
	logger  *slog.Logger

	mu      sync.Mutex
	state   *State
	dirty   map[string]bool
}

// New returns a Coordinator for baseDir. cache may be nil, in which case
// Load always reparses.
func New(baseDir string, files filelayer.FileLayer, p parser.Parser, cache parsecache.Cache, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		baseDir: baseDir,
		files:   files,
		parser:  p,
		cache:   cache,
		logger:  logger,
		dirty:   map[string]bool{},
	}
}

func (c *Coordinator) localStorageDir() string {
	return path.Join(c.baseDir, localStorageDirName)
}

func (c *Coordinator) credentialsDir() string {
	return path.Join(c.localStorageDir(), credentialsDirName)
}

func (c *Coordinator) configPath() string {
	return path.Join(c.baseDir, ConfigFilename)
}

// stateFilePath is the reserved location of the workspace's applied-state
// file, a sibling of the config file directly under base_dir. Nothing in
// this module's scope ever writes one (there is no execution engine here to
// produce applied-resource state), but Init still treats its presence as
// evidence of a pre-existing workspace, matching spec.md's {config path,
// local-storage dir, state file} precondition.
func (c *Coordinator) stateFilePath() string {
	return path.Join(c.baseDir, stateFilename)
}

// State returns the current immutable snapshot.
func (c *Coordinator) State() *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Init creates a fresh workspace rooted at c.baseDir. name defaults to the
// base directory's basename.
func (c *Coordinator) Init(ctx context.Context, name string) error {
	ctx = ctxlog.WithLogger(ctx, c.logger)
	logger := ctxlog.FromContext(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, err := c.findAncestorWorkspace(); err != nil {
		return fmt.Errorf("checking for an existing workspace: %w", err)
	} else if existing != "" {
		return &ExistingWorkspaceError{Path: existing}
	}

	for _, p := range []string{c.configPath(), c.localStorageDir(), c.stateFilePath()} {
		exists, err := c.files.Exists(p)
		if err != nil {
			return fmt.Errorf("checking %s: %w", p, err)
		}
		if exists {
			return &NotAnEmptyWorkspaceError{Path: c.baseDir}
		}
	}

	if name == "" {
		name = filepath.Base(c.baseDir)
	}
	if err := c.files.Mkdirp(c.credentialsDir()); err != nil {
		return fmt.Errorf("creating local storage: %w", err)
	}

	configInstance := newConfigInstance(name)
	buffer := renderConfigBlueprint(configInstance)
	result := c.parser.Parse(buffer, ConfigFilename)
	if len(result.Errors) > 0 {
		return fmt.Errorf("rendered workspace config failed to parse back: %s", result.Errors[0].Error())
	}

	c.state = createWorkspaceState(map[string]*ParsedBlueprint{
		ConfigFilename: {Filename: ConfigFilename, Buffer: buffer, Result: result},
	})
	c.dirty[ConfigFilename] = true

	logger.Info("workspace initialized", "base_dir", c.baseDir, "name", name)
	return c.flushLocked(ctx)
}

// findAncestorWorkspace walks upward from c.baseDir looking for an existing
// config file, stopping at the filesystem root.
func (c *Coordinator) findAncestorWorkspace() (string, error) {
	dir := c.baseDir
	for {
		candidate := path.Join(dir, ConfigFilename)
		exists, err := c.files.Exists(candidate)
		if err != nil {
			return "", err
		}
		if exists {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load gathers every blueprint under c.baseDir (recursively, `*.bp` files,
// skipping dot-prefixed directories), the credentials sub-directory, parses
// them (concurrently, optionally through cache), and builds the initial
// state.
func (c *Coordinator) Load(ctx context.Context, useCache bool) error {
	ctx = ctxlog.WithLogger(ctx, c.logger)
	logger := ctxlog.FromContext(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()

	paths, err := c.discoverBlueprintPaths()
	if err != nil {
		return fmt.Errorf("discovering blueprints: %w", err)
	}

	parsed, err := c.parseAll(ctx, paths, useCache)
	if err != nil {
		return err
	}

	c.state = createWorkspaceState(parsed)
	logger.Info("workspace loaded", "blueprint_count", len(parsed))
	return nil
}

func (c *Coordinator) discoverBlueprintPaths() ([]string, error) {
	var paths []string
	mainEntries, err := c.files.Walk(c.baseDir)
	if err != nil {
		return nil, err
	}
	for _, e := range mainEntries {
		if !e.IsDir && strings.HasSuffix(e.Basename, ".bp") {
			paths = append(paths, e.FullPath)
		}
	}

	exists, err := c.files.Exists(c.credentialsDir())
	if err != nil {
		return nil, err
	}
	if exists {
		credEntries, err := c.files.Walk(c.credentialsDir())
		if err != nil {
			return nil, err
		}
		for _, e := range credEntries {
			if !e.IsDir && strings.HasSuffix(e.Basename, ".bp") {
				paths = append(paths, e.FullPath)
			}
		}
	}
	return paths, nil
}

// parseAll reads and parses every path concurrently: I/O and parsing are
// suspension points, unlike Merge/Resolve/Validate which stay synchronous.
func (c *Coordinator) parseAll(ctx context.Context, paths []string, useCache bool) (map[string]*ParsedBlueprint, error) {
	results := make([]*ParsedBlueprint, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			pb, err := c.parseOne(p, useCache)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", p, err)
			}
			results[i] = pb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*ParsedBlueprint, len(results))
	for _, pb := range results {
		out[pb.Filename] = pb
	}
	return out, nil
}

func (c *Coordinator) parseOne(p string, useCache bool) (*ParsedBlueprint, error) {
	buffer, err := c.files.ReadTextFile(p)
	if err != nil {
		return nil, err
	}
	buf := []byte(buffer)

	if useCache && c.cache != nil {
		key, err := c.cacheKey(p)
		if err == nil {
			if cached, ok := c.cache.Get(key); ok {
				return &ParsedBlueprint{Filename: p, Buffer: buf, Result: cached}, nil
			}
		}
	}

	result := c.parser.Parse(buf, p)
	if useCache && c.cache != nil {
		if key, err := c.cacheKey(p); err == nil {
			c.cache.Put(key, result)
		}
	}
	return &ParsedBlueprint{Filename: p, Buffer: buf, Result: result}, nil
}

func (c *Coordinator) cacheKey(p string) (parsecache.Key, error) {
	info, err := c.files.Stat(p)
	if err != nil {
		return parsecache.Key{}, err
	}
	return parsecache.Key{Filename: p, LastModified: info.ModTime()}, nil
}

// SetBlueprints parses each buffer, overwrites parsed_blueprints entries by
// filename, marks those filenames dirty, and rebuilds state.
func (c *Coordinator) SetBlueprints(ctx context.Context, buffers map[string][]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setBlueprintsLocked(ctx, buffers)
}

func (c *Coordinator) setBlueprintsLocked(ctx context.Context, buffers map[string][]byte) error {
	next := c.cloneParsedBlueprints()
	for filename, buf := range buffers {
		next[filename] = &ParsedBlueprint{Filename: filename, Buffer: buf, Result: c.parser.Parse(buf, filename)}
		c.dirty[filename] = true
	}
	c.state = createWorkspaceState(next)
	_ = ctx
	return nil
}

// RemoveBlueprints drops the given filenames, marks them dirty (so Flush
// deletes them from disk), and rebuilds state.
func (c *Coordinator) RemoveBlueprints(ctx context.Context, filenames []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.cloneParsedBlueprints()
	for _, filename := range filenames {
		delete(next, filename)
		c.dirty[filename] = true
	}
	c.state = createWorkspaceState(next)
	_ = ctx
	return nil
}

// UpdateBlueprints locates each change's insertion point via the current
// source map, splices it into its owning blueprint's buffer (grouped by
// filename), and calls SetBlueprints with the resulting buffers. A change
// whose buffer update fails is logged and skipped rather than aborting the
// whole batch.
func (c *Coordinator) UpdateBlueprints(ctx context.Context, changes []blueprintedit.Change) error {
	ctx = ctxlog.WithLogger(ctx, c.logger)
	logger := ctxlog.FromContext(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()

	locations := blueprintedit.GetChangeLocations(changes, c.state.SourceMap)
	byFile := map[string][]blueprintedit.Location{}
	for _, loc := range locations {
		if loc.Range.Filename == "" {
			logger.Warn("change has no source location, skipping", "elem_id", loc.Change.ElemIDFullName)
			continue
		}
		byFile[loc.Range.Filename] = append(byFile[loc.Range.Filename], loc)
	}

	buffers := map[string][]byte{}
	for filename, locs := range byFile {
		pb, ok := c.state.ParsedBlueprints[filename]
		if !ok {
			logger.Warn("change targets an unknown blueprint, skipping", "filename", filename)
			continue
		}
		buffers[filename] = blueprintedit.UpdateBlueprintData(pb.Buffer, locs)
	}

	return c.setBlueprintsLocked(ctx, buffers)
}

// Flush writes every dirty blueprint to disk (deleting files whose
// blueprint is now absent), routes adapters' single-config-instance
// blueprints under the credentials directory (see writePathFor), updates
// the parse cache, and clears
// dirty_blueprints.
func (c *Coordinator) Flush(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, c.logger)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked(ctx)
}

func (c *Coordinator) flushLocked(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if len(c.dirty) == 0 {
		return nil
	}

	g, _ := errgroup.WithContext(ctx)
	var mu sync.Mutex
	flushed := map[string]bool{}

	for filename := range c.dirty {
		filename := filename
		g.Go(func() error {
			pb, ok := c.state.ParsedBlueprints[filename]
			if !ok {
				if err := c.files.Rm(c.writePathFor(filename, nil)); err != nil {
					logger.Warn("failed to delete blueprint", "filename", filename, "error", err)
					return nil
				}
				mu.Lock()
				flushed[filename] = true
				mu.Unlock()
				return nil
			}

			target := c.writePathFor(filename, pb.Result.Elements)
			if err := c.files.WriteTextFile(target, string(pb.Buffer)); err != nil {
				return fmt.Errorf("writing %s: %w", target, err)
			}
			if c.cache != nil {
				if key, err := c.cacheKey(target); err == nil {
					c.cache.Put(key, pb.Result)
				}
			}
			mu.Lock()
			flushed[filename] = true
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	for filename := range flushed {
		delete(c.dirty, filename)
	}
	return nil
}

// writePathFor decides where a blueprint's buffer belongs on disk: a
// blueprint holding exactly one element, a single-instance config object of
// some adapter, is routed under the credentials directory; everything else,
// including the workspace's own config instance (ConfigAdapter/
// ConfigTypeName), is written under base_dir using its own filename as-is.
func (c *Coordinator) writePathFor(filename string, elements []element.Element) string {
	if len(elements) == 1 {
		if inst, ok := elements[0].(*element.InstanceElement); ok && inst.ElemID().IsConfig() &&
			!inst.ElemID().TypeID().Equal(elemid.NewTypeID(ConfigAdapter, ConfigTypeName)) {
			return path.Join(c.credentialsDir(), inst.ElemID().Adapter+".bp")
		}
	}
	if filepath.IsAbs(filename) || strings.HasPrefix(filename, c.baseDir) || strings.HasPrefix(filename, c.localStorageDir()) {
		return filename
	}
	return path.Join(c.baseDir, filename)
}

func (c *Coordinator) cloneParsedBlueprints() map[string]*ParsedBlueprint {
	next := make(map[string]*ParsedBlueprint, len(c.state.ParsedBlueprints))
	for k, v := range c.state.ParsedBlueprints {
		next[k] = v
	}
	return next
}

// GetWorkspaceErrors projects every parse, merge, and validation error in
// the current state to a WorkspaceError carrying its source fragments.
func (c *Coordinator) GetWorkspaceErrors() []WorkspaceError {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []WorkspaceError
	for _, pe := range c.state.Errors.Parse {
		var fragments [][]byte
		if pb, ok := c.state.ParsedBlueprints[pe.Subject.Filename]; ok {
			if frag := srcrange.Slice(pb.Buffer, pe.Subject); frag != nil {
				fragments = append(fragments, frag)
			}
		}
		out = append(out, WorkspaceError{SourceFragments: fragments, Err: pe, Severity: SeverityError, Cause: pe})
	}
	for _, me := range c.state.Errors.Merge {
		out = append(out, c.projectElemIDError(me, SeverityError))
	}
	for _, ve := range c.state.Errors.Validation {
		sev := SeverityWarning
		if ve.Severity().String() == "error" {
			sev = SeverityError
		}
		out = append(out, c.projectElemIDError(ve, sev))
	}
	return out
}

type elemIDError interface {
	error
	ElemID() elemid.ElemID
}

func (c *Coordinator) projectElemIDError(err elemIDError, sev Severity) WorkspaceError {
	var fragments [][]byte
	for _, r := range c.state.SourceMap[err.ElemID().FullName()] {
		if pb, ok := c.state.ParsedBlueprints[r.Filename]; ok {
			if frag := srcrange.Slice(pb.Buffer, r); frag != nil {
				fragments = append(fragments, frag)
			}
		}
	}
	return WorkspaceError{SourceFragments: fragments, Err: err, Severity: sev, Cause: err}
}

// renderConfigBlueprint produces the fixed-format buffer for the workspace
// config blueprint. The blueprint text grammar belongs to an external
// parser this package only consumes through the Parser interface, but the
// rendered text must still parse back as a genuine "instance" block under
// that grammar (elemid.NewInstanceID(ConfigAdapter, ConfigTypeName,
// elemid.ConfigInstanceName)), or a fresh workspace's uid/name are
// unrecoverable on the next Load.
func renderConfigBlueprint(inst *element.InstanceElement) []byte {
	uid := rawString(inst.Value["uid"])
	name := rawString(inst.Value["name"])
	return []byte(fmt.Sprintf(
		"instance %q %q %q {\n  uid  = %q\n  name = %q\n}\n",
		ConfigAdapter, ConfigTypeName, elemid.ConfigInstanceName, uid, name,
	))
}

func rawString(v element.Value) string {
	if v.Kind != value.KindString {
		return ""
	}
	return v.Prim.AsString()
}
