package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so runs do not leak into
// each other through the package-level flag variables.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with a config file inside dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.json")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPlanE2E(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "single type",
			args: []string{"plan", "--sheet", "100x100", "--figure", "30x30:20"},
			wantContain: []string{
				"Sheets required: 3",
				"theoretical minimum 2",
				"30x30",
			},
		},
		{
			name: "unplaceable type",
			args: []string{"plan", "--sheet", "100x100", "--figure", "30x30:5", "--figure", "200x10:1:Rail"},
			wantContain: []string{
				"Sheets required: 1",
				"Rail",
				"unplaceable",
			},
		},
		{
			name: "json",
			args: []string{"plan", "--sheet", "100x100", "--figure", "50x50:4", "--json"},
			wantContain: []string{
				`"sheets_required": 1`,
			},
		},
		{
			name:    "no figures",
			args:    []string{"plan", "--sheet", "100x100"},
			wantErr: true,
		},
		{
			name:    "bad figure",
			args:    []string{"plan", "--figure", "30x30"},
			wantErr: true,
		},
		{
			name:    "NaN figure width",
			args:    []string{"plan", "--sheet", "100x100", "--figure", "NaNx10:5"},
			wantErr: true,
		},
		{
			name:    "infinite sheet",
			args:    []string{"plan", "--sheet", "Infx100", "--figure", "10x10:5"},
			wantErr: true,
		},
		{
			name:    "NaN figure margin",
			args:    []string{"plan", "--sheet", "100x100", "--figure", "10x10:5:m=NaN"},
			wantErr: true,
		},
		{
			name:    "bad order",
			args:    []string{"plan", "--figure", "30x30:1", "--order", "random"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, t.TempDir(), tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContain {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestEstimateE2E(t *testing.T) {
	out, err := run(t, t.TempDir(), "estimate", "--sheet", "100x100", "--figure", "30x30:20", "--waste", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "Theoretical minimum: 2 sheets")
	assert.Contains(t, out, "3x3")
}

func TestCompareE2E(t *testing.T) {
	out, err := run(t, t.TempDir(), "compare", "--sheet", "100x100", "--margin", "5", "--figure", "30x30:20")
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO")
	assert.Contains(t, out, "*")
}

func TestPackE2E(t *testing.T) {
	out, err := run(t, t.TempDir(), "pack", "--sheet", "100x100", "--figure", "30x30:20", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"placements"`)
}

func TestPlanSaveJob(t *testing.T) {
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "job.json")

	_, err := run(t, dir, "plan", "--sheet", "100x100", "--figure", "30x30:20", "--save", jobPath)
	require.NoError(t, err)
	require.FileExists(t, jobPath)

	out, err := run(t, dir, "plan", "--job", jobPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Sheets required: 3")
}

func TestTemplateE2E(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "template", "save", "shelves", "--sheet", "100x100", "--figure", "30x30:20:Shelf", "--description", "test")
	require.NoError(t, err)
	assert.Contains(t, out, `saved template "shelves"`)

	out, err = run(t, dir, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "shelves")
	assert.Contains(t, out, "100x100")

	out, err = run(t, dir, "plan", "--template", "shelves")
	require.NoError(t, err)
	assert.Contains(t, out, "Shelf")
	assert.Contains(t, out, "Sheets required: 3")

	_, err = run(t, dir, "template", "remove", "shelves")
	require.NoError(t, err)
	_, err = run(t, dir, "plan", "--template", "shelves")
	assert.Error(t, err)
}

func TestExportE2E(t *testing.T) {
	dir := t.TempDir()
	paths := map[string]string{
		"--pdf":          filepath.Join(dir, "plan.pdf"),
		"--xlsx":         filepath.Join(dir, "plan.xlsx"),
		"--dxf":          filepath.Join(dir, "sheet.dxf"),
		"--chart":        filepath.Join(dir, "plan.html"),
		"--gcode":        filepath.Join(dir, "sheet.nc"),
		"--cutting-plan": filepath.Join(dir, "cuts.json"),
	}

	args := []string{"export", "--sheet", "1000x500", "--figure", "300x200:4:Panel"}
	for flag, path := range paths {
		args = append(args, flag, path)
	}
	_, err := run(t, dir, args...)
	require.NoError(t, err)

	for flag, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err, flag)
		assert.Positive(t, info.Size(), flag)
	}

	program, err := os.ReadFile(paths["--gcode"])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(program), "G1"), "program has cutting moves")
}

func TestExportNothingRequested(t *testing.T) {
	_, err := run(t, t.TempDir(), "export", "--figure", "30x30:1")
	assert.Error(t, err)
}

func TestInventoryAndBackupE2E(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "inventory")
	require.NoError(t, err)
	assert.Contains(t, out, "SHEET")
	assert.Contains(t, out, "TOOL")
	assert.FileExists(t, filepath.Join(dir, "inventory.json"))

	backup := filepath.Join(dir, "backup.json")
	out, err = run(t, dir, "backup", "export", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "backup written")

	restoreDir := t.TempDir()
	out, err = run(t, restoreDir, "backup", "restore", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "restored backup")
	assert.FileExists(t, filepath.Join(restoreDir, "inventory.json"))
	assert.FileExists(t, filepath.Join(restoreDir, "config.json"))
}
