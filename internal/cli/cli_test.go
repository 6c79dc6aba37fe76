package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kylepfurey/FureyLib-sub005/internal/csvtable"
	"github.com/kylepfurey/FureyLib-sub005/internal/dialogue"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/logger"
)

// --- looksLikePath ---

func TestLooksLikePath(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"innkeeper", false},
		{"innkeeper.yaml", false},
		{"./innkeeper.yaml", true},
		{"dialogue/innkeeper.yaml", true},
		{"/abs/path/innkeeper.yaml", true},
	}
	for _, c := range cases {
		if got := looksLikePath(c.input); got != c.want {
			t.Errorf("looksLikePath(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// --- hasYAMLExt ---

func TestHasYAMLExt(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"innkeeper.yaml", true},
		{"innkeeper.yml", true},
		{"INNKEEPER.YAML", true},
		{"innkeeper.json", false},
		{"innkeeper", false},
		{"", false},
	}
	for _, c := range cases {
		if got := hasYAMLExt(c.input); got != c.want {
			t.Errorf("hasYAMLExt(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// --- fileExists ---

func TestFileExists_True(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "exists.txt")
	if err := os.WriteFile(p, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !fileExists(p) {
		t.Errorf("expected fileExists=true for %s", p)
	}
}

func TestFileExists_False(t *testing.T) {
	tmp := t.TempDir()
	if fileExists(filepath.Join(tmp, "not_there.txt")) {
		t.Error("expected fileExists=false for non-existent file")
	}
}

// --- parseDelimiter ---

func TestParseDelimiter(t *testing.T) {
	cases := []struct {
		input string
		want  rune
	}{
		{",", ','},
		{"comma", ','},
		{";", ';'},
		{"Semicolon", ';'},
		{"tab", '\t'},
		{`\t`, '\t'},
	}
	for _, c := range cases {
		got, err := parseDelimiter(c.input)
		if err != nil {
			t.Fatalf("parseDelimiter(%q): %v", c.input, err)
		}
		if got != c.want {
			t.Errorf("parseDelimiter(%q) = %q, want %q", c.input, got, c.want)
		}
	}
	if _, err := parseDelimiter("|"); err == nil {
		t.Error("expected error for unsupported delimiter")
	}
}

// --- printTable ---

func TestPrintTable_Table(t *testing.T) {
	tbl := csvtable.NewTable([]string{"id", "name"}, [][]string{{"key", "Cellar Key, rusty"}, {"arrow", "Arrow"}})
	var out bytes.Buffer
	if err := printTable(&out, tbl, "table"); err != nil {
		t.Fatalf("printTable: %v", err)
	}
	s := out.String()
	for _, want := range []string{"id", "name", "Cellar Key, rusty", "Arrow", "(2 row(s))"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in output:\n%s", want, s)
		}
	}
	if strings.Index(s, "Cellar Key") > strings.Index(s, "Arrow") {
		t.Errorf("rows out of order:\n%s", s)
	}
}

func TestPrintTable_UnknownFormat(t *testing.T) {
	tbl := csvtable.NewTable(nil, [][]string{{"a"}})
	if err := printTable(&bytes.Buffer{}, tbl, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestDialHost(t *testing.T) {
	if got := dialHost(":7777"); got != "localhost:7777" {
		t.Errorf("dialHost(:7777) = %q", got)
	}
	if got := dialHost("10.0.0.2:9000"); got != "10.0.0.2:9000" {
		t.Errorf("dialHost kept host = %q", got)
	}
}

func TestSendInterval(t *testing.T) {
	cases := []struct {
		rate int
		want time.Duration
	}{
		{20, 50 * time.Millisecond},
		{0, 50 * time.Millisecond},
		{-3, 50 * time.Millisecond},
		{1 << 40, time.Millisecond},
	}
	for _, c := range cases {
		if got := sendInterval(c.rate); got != c.want {
			t.Errorf("sendInterval(%d) = %s, want %s", c.rate, got, c.want)
		}
	}
}

func TestTimeCountdown_RejectsNonPositiveTick(t *testing.T) {
	t.Chdir(t.TempDir())

	for _, tick := range []string{"0s", "-1s"} {
		if _, err := run(t, "time", "countdown", "1s", "--tick="+tick); err == nil {
			t.Errorf("expected error for --tick %s", tick)
		}
	}
}

// --- playPlain ---

const plainScript = `id: gate
start: ask
nodes:
  - id: ask
    speaker: Guard
    lines:
      - "Halt, {{player}}."
      - "State your business."
    choices:
      - text: "Trade."
        next: trade
      - text: "Leave."
  - id: trade
    speaker: Guard
    lines:
      - "Market's to the east."
`

func newPlainRunner(t *testing.T) *dialogue.Runner {
	t.Helper()
	s, err := dialogue.ParseScript([]byte(plainScript))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	r, err := dialogue.NewRunner(s, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	r.SetVar("player", "Ada")
	return r
}

func TestPlayPlain_FollowsChoice(t *testing.T) {
	r := newPlainRunner(t)
	var out bytes.Buffer

	if err := playPlain(r, strings.NewReader("9\n1\n"), &out); err != nil {
		t.Fatalf("playPlain: %v", err)
	}

	s := out.String()
	for _, want := range []string{
		"Guard: Halt, Ada.",
		"Guard: State your business.",
		"  1) Trade.",
		"  2) Leave.",
		"invalid choice, try again",
		"Guard: Market's to the east.",
		"(end)",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in output:\n%s", want, s)
		}
	}
}

func TestPlayPlain_EOFStopsEarly(t *testing.T) {
	r := newPlainRunner(t)
	var out bytes.Buffer

	if err := playPlain(r, strings.NewReader(""), &out); err != nil {
		t.Fatalf("playPlain: %v", err)
	}
	if strings.Contains(out.String(), "(end)") {
		t.Errorf("EOF should not reach the end:\n%s", out.String())
	}
}

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"init", "csv", "save", "queue", "dialogue", "mesh", "light", "net", "time", "version"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
}

func TestSaveCmd_HasSubcommands(t *testing.T) {
	cmd := saveCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"write", "read", "list", "delete", "get"} {
		if !names[expected] {
			t.Errorf("expected 'save %s' subcommand", expected)
		}
	}
	if cmd.PersistentFlags().Lookup("workspace") == nil {
		t.Error("expected --workspace flag on save command")
	}
}

func TestNetCmd_Flags(t *testing.T) {
	cmd := netCmd()
	for _, sub := range cmd.Commands() {
		switch sub.Name() {
		case "serve":
			if sub.Flags().Lookup("addr") == nil {
				t.Error("expected --addr flag on net serve")
			}
		case "client":
			for _, flag := range []string{"url", "name", "duration", "chat", "radius"} {
				if sub.Flags().Lookup(flag) == nil {
					t.Errorf("expected --%s flag on net client", flag)
				}
			}
		default:
			t.Errorf("unexpected net subcommand %q", sub.Name())
		}
	}
}

func TestInitCmd_Flags(t *testing.T) {
	cmd := initCmd()
	if cmd.Flags().Lookup("force") == nil {
		t.Error("expected --force flag on init command")
	}
}

// --- resolveWorkspaceRoot ---

func TestResolveWorkspaceRoot_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	got, err := resolveWorkspaceRoot(tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp {
		t.Errorf("expected %q, got %q", tmp, got)
	}
}

func TestResolveWorkspaceRoot_RelativePath(t *testing.T) {
	got, err := resolveWorkspaceRoot(".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

// --- end to end ---

// run executes the root command inside dir and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	_ = logger.Close()
	return out.String(), err
}

func initWorkspace(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Chdir(tmp)
	out, err := run(t, "init", tmp)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Workspace ready") {
		t.Fatalf("unexpected init output %q", out)
	}
	return tmp
}

func TestInit_ScaffoldsWorkspace(t *testing.T) {
	root := initWorkspace(t)
	for _, p := range []string{"fureylib.yaml", filepath.Join("dialogue", "innkeeper.yaml"), filepath.Join("data", "items.csv")} {
		if !fileExists(filepath.Join(root, p)) {
			t.Errorf("expected %s after init", p)
		}
	}
	if !fileExists(filepath.Join(root, ".fureylib", "logs", "fureylib.log")) {
		t.Error("expected log file inside the workspace")
	}
}

func TestSubcommand_OutsideWorkspaceLeavesNoLogs(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	if _, err := run(t, "version"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if _, err := run(t, "time", "format", "1m"); err != nil {
		t.Fatalf("time format: %v", err)
	}
	if fileExists(filepath.Join(tmp, ".fureylib")) {
		t.Error("expected no .fureylib dir outside a workspace")
	}
}

func TestSave_WriteReadGetDelete(t *testing.T) {
	initWorkspace(t)

	if _, err := run(t, "save", "write", "slot1", "--name", "Hero", "--data", `{"level":7,"class":"mage"}`); err != nil {
		t.Fatalf("save write: %v", err)
	}

	out, err := run(t, "save", "read", "slot1")
	if err != nil {
		t.Fatalf("save read: %v", err)
	}
	if !strings.Contains(out, "Name:    Hero") {
		t.Errorf("unexpected read output:\n%s", out)
	}

	out, err = run(t, "save", "get", "slot1", "$.data.data.level")
	if err != nil {
		t.Fatalf("save get: %v", err)
	}
	if strings.TrimSpace(out) != "7" {
		t.Errorf("expected 7, got %q", out)
	}

	out, err = run(t, "save", "list")
	if err != nil {
		t.Fatalf("save list: %v", err)
	}
	if !strings.Contains(out, "- slot1") {
		t.Errorf("expected slot1 in list:\n%s", out)
	}

	if _, err := run(t, "save", "delete", "slot1"); err != nil {
		t.Fatalf("save delete: %v", err)
	}
	if _, err := run(t, "save", "delete", "slot1"); err == nil {
		t.Error("expected error deleting a missing slot")
	}
}

func TestCSVParse_JSON(t *testing.T) {
	root := initWorkspace(t)

	out, err := run(t, "csv", "parse", filepath.Join(root, "data", "items.csv"), "--format", "json")
	if err != nil {
		t.Fatalf("csv parse: %v", err)
	}
	var records []map[string]string
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[3]["name"] != "Cellar Key, rusty" {
		t.Errorf("quoted field not preserved: %q", records[3]["name"])
	}
}

func TestDialoguePlay_Plain(t *testing.T) {
	initWorkspace(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("1\n"))
	cmd.SetArgs([]string{"dialogue", "play", "innkeeper", "--plain", "--var", "player=Ada"})
	err := cmd.Execute()
	_ = logger.Close()
	if err != nil {
		t.Fatalf("dialogue play: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "Innkeeper: Welcome, Ada.") || !strings.Contains(s, "(end)") {
		t.Errorf("unexpected play output:\n%s", s)
	}
}

func TestDialogueValidate_Scaffold(t *testing.T) {
	initWorkspace(t)

	out, err := run(t, "dialogue", "validate")
	if err != nil {
		t.Fatalf("dialogue validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[OK]") {
		t.Errorf("expected OK report:\n%s", out)
	}
}

func TestMeshCube_WritesOBJ(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	out, err := run(t, "mesh", "cube", "--size", "2")
	if err != nil {
		t.Fatalf("mesh cube: %v", err)
	}
	if got := strings.Count(out, "\nv "); got != 24 {
		t.Errorf("expected 24 vertices, got %d", got)
	}
	if got := strings.Count(out, "\nf "); got != 12 {
		t.Errorf("expected 12 faces, got %d", got)
	}
}

func TestTimeFormat(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "time", "format", "90s")
	if err != nil {
		t.Fatalf("time format: %v", err)
	}
	if strings.TrimSpace(out) != "1:30" {
		t.Errorf("expected 1:30, got %q", out)
	}
}

func TestVersion(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "fureylib ") {
		t.Errorf("unexpected version output %q", out)
	}
}
