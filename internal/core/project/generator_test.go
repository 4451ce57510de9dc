package project

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nazmul-nhb/nhb-express/internal/catalog"
	"github.com/nazmul-nhb/nhb-express/internal/deps"
	"github.com/nazmul-nhb/nhb-express/internal/process"
	"github.com/nazmul-nhb/nhb-express/internal/template"
	"github.com/nazmul-nhb/nhb-express/internal/ui"
	"github.com/nazmul-nhb/nhb-express/pkg/models"
)

// recordingRunner captures every subprocess instead of running it.
type recordingRunner struct {
	calls []process.Command
	fail  map[int]error
}

func (r *recordingRunner) Run(_ context.Context, cmd process.Command) error {
	r.calls = append(r.calls, cmd)
	return r.fail[len(r.calls)-1]
}

// scriptedConfirmer answers the overwrite question.
type scriptedConfirmer struct {
	ok    bool
	err   error
	asked []string
}

func (c *scriptedConfirmer) ConfirmOverwrite(_ context.Context, name string) (bool, error) {
	c.asked = append(c.asked, name)
	return c.ok, c.err
}

type recordingReporter struct{ lines []string }

func (r *recordingReporter) Step(msg string)    { r.lines = append(r.lines, "step: "+msg) }
func (r *recordingReporter) Success(msg string) { r.lines = append(r.lines, "ok: "+msg) }

var testMeta = Metadata{
	Author:  models.Author{Name: "Nazmul Hassan", Email: "nazmulnhb@gmail.com", URL: "https://nazmul-nhb.dev"},
	License: "ISC",
	Version: "0.1.0",
}

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func newTestGenerator(t *testing.T, r process.Runner, opts ...Option) Generator {
	t.Helper()
	return NewGenerator(mustCatalog(t), deps.NewInstaller(r, nil), deps.NewMigrator(r, nil), opts...)
}

// snapshot maps every file under dir to its content.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, p)
		if d.IsDir() {
			out[filepath.ToSlash(rel)+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot %s: %v", dir, err)
	}
	return out
}

func seedExisting(t *testing.T, base string) string {
	t.Helper()
	dir := filepath.Join(base, "my-server")
	if err := os.MkdirAll(filepath.Join(dir, "old"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "old", "keep.txt"), []byte("precious"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"old"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestGenerate_MongoosePnpm(t *testing.T) {
	base := t.TempDir()
	r := &recordingRunner{}
	rep := &recordingReporter{}
	g := newTestGenerator(t, r, WithReporter(rep))

	res, err := g.Generate(context.Background(), Options{
		Request:  NewRequest("my-server", "mongoose", "pnpm"),
		BaseDir:  base,
		Metadata: testMeta,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	target := filepath.Join(base, "my-server")
	if res.Target != target || res.Replaced || !res.Installed {
		t.Errorf("Result = %+v", res)
	}

	// File set equals the template's, dotfiles renamed, plus package.json.
	src, _ := template.Source("", "mongoose")
	want, _ := template.Files(src)
	for i, f := range want {
		switch f {
		case "env", "gitignore":
			want[i] = "." + f
		}
	}
	if !slices.Contains(want, "package.json") {
		want = append(want, "package.json")
	}
	var got []string
	for name := range snapshot(t, target) {
		if !strings.HasSuffix(name, "/") {
			got = append(got, name)
		}
	}
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("files = %v\nwant %v", got, want)
	}

	data, err := os.ReadFile(filepath.Join(target, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	var pkg struct {
		Name    string            `json:"name"`
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		t.Fatalf("package.json: %v", err)
	}
	if pkg.Name != "my-server" || pkg.Scripts["dev"] != "nodemon" {
		t.Errorf("package.json = %+v", pkg)
	}

	if len(r.calls) != 2 {
		t.Fatalf("subprocesses = %v, want exactly two install calls", r.calls)
	}
	if c := r.calls[0]; c.Name != "pnpm" || c.Args[0] != "add" || slices.Contains(c.Args, "-D") {
		t.Errorf("first call = %s, want pnpm add <deps>", c)
	}
	if c := r.calls[1]; c.Name != "pnpm" || !slices.Equal(c.Args[:2], []string{"add", "-D"}) {
		t.Errorf("second call = %s, want pnpm add -D <devDeps>", c)
	}
	for _, c := range r.calls {
		if c.Dir != target {
			t.Errorf("%s ran in %q, want %q", c, c.Dir, target)
		}
	}

	wantReport := []string{"step: Installing dependencies...", "ok: Dependencies installed!"}
	if !slices.Equal(rep.lines, wantReport) {
		t.Errorf("reporter = %v, want %v", rep.lines, wantReport)
	}
}

func TestGenerate_MigrationsRunAfterInstall(t *testing.T) {
	tests := map[string][]string{
		"drizzle": {"drizzle-kit generate --name=drizzle --config=drizzle.config.ts", "drizzle-kit migrate --config=drizzle.config.ts"},
		"prisma":  {"prisma generate", "prisma migrate dev --name init"},
	}
	for db, wantMigrations := range tests {
		t.Run(db, func(t *testing.T) {
			r := &recordingRunner{}
			_, err := newTestGenerator(t, r).Generate(context.Background(), Options{
				Request:  NewRequest("api", db, "npm"),
				BaseDir:  t.TempDir(),
				Metadata: testMeta,
			})
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(r.calls) != 4 {
				t.Fatalf("calls = %d, want 2 installs + 2 migrations", len(r.calls))
			}
			for i, want := range wantMigrations {
				if got := r.calls[2+i].String(); got != want {
					t.Errorf("migration %d = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestGenerate_DeclinedOverwriteLeavesTargetUntouched(t *testing.T) {
	base := t.TempDir()
	dir := seedExisting(t, base)
	before := snapshot(t, dir)

	r := &recordingRunner{}
	conf := &scriptedConfirmer{ok: false}
	_, err := newTestGenerator(t, r, WithConfirmer(conf)).Generate(context.Background(), Options{
		Request:  NewRequest("my-server", "drizzle", "pnpm"),
		BaseDir:  base,
		Metadata: testMeta,
	})
	if !errors.Is(err, ErrOverwriteDeclined) {
		t.Fatalf("Generate() error = %v, want ErrOverwriteDeclined", err)
	}
	if !slices.Equal(conf.asked, []string{"my-server"}) {
		t.Errorf("asked = %v", conf.asked)
	}
	if len(r.calls) != 0 {
		t.Errorf("subprocesses ran after decline: %v", r.calls)
	}
	after := snapshot(t, dir)
	if len(before) != len(after) {
		t.Fatalf("entries changed: before %v after %v", before, after)
	}
	for k, v := range before {
		if after[k] != v {
			t.Errorf("%s changed", k)
		}
	}
}

func TestGenerate_CancelledConfirmation(t *testing.T) {
	base := t.TempDir()
	dir := seedExisting(t, base)
	before := snapshot(t, dir)

	abort := errors.New("aborted")
	r := &recordingRunner{}
	_, err := newTestGenerator(t, r, WithConfirmer(&scriptedConfirmer{err: abort})).Generate(context.Background(), Options{
		Request: NewRequest("my-server", "mongoose", "pnpm"),
		BaseDir: base,
	})
	if !errors.Is(err, abort) {
		t.Fatalf("Generate() error = %v, want the confirmer's error", err)
	}
	if len(r.calls) != 0 || len(snapshot(t, dir)) != len(before) {
		t.Error("cancelled confirmation must not mutate anything")
	}
}

func TestGenerate_ConfirmedOverwriteRemovesOldFiles(t *testing.T) {
	base := t.TempDir()
	dir := seedExisting(t, base)

	var out bytes.Buffer
	hm := ui.NewHeadlessManager()
	hm.ForceHeadless(true)

	res, err := newTestGenerator(t, &recordingRunner{},
		WithConfirmer(&scriptedConfirmer{ok: true}),
		WithProgress(ui.NewProgress(ui.PlainTheme(), hm, &out)),
	).Generate(context.Background(), Options{
		Request:  NewRequest("my-server", "prisma", "yarn"),
		BaseDir:  base,
		Metadata: testMeta,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !res.Replaced {
		t.Error("Result.Replaced = false")
	}
	if _, err := os.Stat(filepath.Join(dir, "old")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("old directory survived the overwrite: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	if !strings.Contains(string(data), `"name": "my-server"`) {
		t.Errorf("package.json was not regenerated: %s", data)
	}

	log := out.String()
	for _, want := range []string{
		`Removing existing "my-server" directory`,
		`✔ Existing "my-server" directory has been removed!`,
		"Copying template",
	} {
		if !strings.Contains(log, want) {
			t.Errorf("progress output missing %q:\n%s", want, log)
		}
	}
}

func TestGenerate_ExistingTargetWithoutConfirmer(t *testing.T) {
	base := t.TempDir()
	seedExisting(t, base)

	_, err := newTestGenerator(t, &recordingRunner{}).Generate(context.Background(), Options{
		Request: NewRequest("my-server", "mongoose", "pnpm"),
		BaseDir: base,
	})
	if !errors.Is(err, ErrTargetExists) {
		t.Errorf("Generate() error = %v, want ErrTargetExists", err)
	}
}

func TestGenerate_ForceSkipsConfirmation(t *testing.T) {
	base := t.TempDir()
	dir := seedExisting(t, base)
	conf := &scriptedConfirmer{}

	_, err := newTestGenerator(t, &recordingRunner{}, WithConfirmer(conf)).Generate(context.Background(), Options{
		Request:     NewRequest("my-server", "mongoose", "pnpm"),
		BaseDir:     base,
		Force:       true,
		SkipInstall: true,
		Metadata:    testMeta,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(conf.asked) != 0 {
		t.Error("Force should not ask")
	}
	if _, err := os.Stat(filepath.Join(dir, "old")); !errors.Is(err, fs.ErrNotExist) {
		t.Error("old files survived a forced overwrite")
	}
}

func TestGenerate_InvalidRequestMutatesNothing(t *testing.T) {
	tests := []Request{
		NewRequest("   ", "mongoose", "pnpm"),
		NewRequest("my-server", "sequelize", "pnpm"),
		NewRequest("my-server", "mongoose", "bun"),
		NewRequest("..", "mongoose", "pnpm"),
		NewRequest("a/b", "mongoose", "pnpm"),
	}
	for _, req := range tests {
		base := t.TempDir()
		r := &recordingRunner{}
		_, err := newTestGenerator(t, r).Generate(context.Background(), Options{Request: req, BaseDir: base})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Generate(%+v) error = %v, want ErrInvalidRequest", req, err)
		}
		if entries, _ := os.ReadDir(base); len(entries) != 0 || len(r.calls) != 0 {
			t.Errorf("Generate(%+v) mutated the filesystem or ran commands", req)
		}
	}
}

func TestGenerate_MissingTemplateMutatesNothing(t *testing.T) {
	base := t.TempDir()
	seedExisting(t, base)
	conf := &scriptedConfirmer{ok: true}

	_, err := newTestGenerator(t, &recordingRunner{}, WithConfirmer(conf), WithTemplatesDir(t.TempDir())).
		Generate(context.Background(), Options{
			Request: NewRequest("my-server", "mongoose", "pnpm"),
			BaseDir: base,
		})
	if !errors.Is(err, template.ErrTemplateNotFound) {
		t.Fatalf("Generate() error = %v, want ErrTemplateNotFound", err)
	}
	if len(conf.asked) != 0 {
		t.Error("overwrite was offered before the template was known to exist")
	}
	if _, err := os.Stat(filepath.Join(base, "my-server", "old", "keep.txt")); err != nil {
		t.Errorf("existing target was touched: %v", err)
	}
}

func TestGenerate_SkipInstall(t *testing.T) {
	r := &recordingRunner{}
	res, err := newTestGenerator(t, r).Generate(context.Background(), Options{
		Request:     NewRequest("my-server", "drizzle", "pnpm"),
		BaseDir:     t.TempDir(),
		SkipInstall: true,
		Metadata:    testMeta,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Installed || len(r.calls) != 0 {
		t.Errorf("SkipInstall ran %d commands", len(r.calls))
	}
	if _, err := os.Stat(res.ManifestPath); err != nil {
		t.Errorf("manifest missing: %v", err)
	}
}

func TestGenerate_InstallFailureStopsPipeline(t *testing.T) {
	exit := &process.ExitError{Command: "pnpm add", Code: 7}
	r := &recordingRunner{fail: map[int]error{0: exit}}
	rep := &recordingReporter{}

	_, err := newTestGenerator(t, r, WithReporter(rep)).Generate(context.Background(), Options{
		Request: NewRequest("my-server", "prisma", "pnpm"),
		BaseDir: t.TempDir(),
	})
	var exitErr *process.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 7 {
		t.Fatalf("Generate() error = %v, want exit code 7", err)
	}
	if len(r.calls) != 1 {
		t.Errorf("calls = %v, want dev install and migrations skipped", r.calls)
	}
	if slices.Contains(rep.lines, "ok: Dependencies installed!") {
		t.Error("success reported after a failed install")
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	base := t.TempDir()
	_, err := newTestGenerator(t, &recordingRunner{}).Generate(ctx, Options{
		Request: NewRequest("my-server", "mongoose", "pnpm"),
		BaseDir: base,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
	if entries, _ := os.ReadDir(base); len(entries) != 0 {
		t.Error("cancelled run created the target")
	}
}
