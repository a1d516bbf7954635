package study

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/assert"

	"crossval/validate"
)

// writeDataset fabricates a heart-shaped CSV on disk.
func writeDataset(t *testing.T, dir string, n int, seed int64) string {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var b strings.Builder
	b.WriteString("Age,MaxHR,ExerciseAngina,HeartDisease\n")
	for i := 0; i < n; i++ {
		age := 30 + 50*rng.Float64()
		hr := 80 + 120*rng.Float64()
		angina := "N"
		eta := 0.07*(age-55) - 0.03*(hr-140)
		if rng.Float64() < 0.3 {
			angina = "Y"
			eta += 2
		}
		y := 0
		if rng.Float64() < 1/(1+math.Exp(-eta)) {
			y = 1
		}
		fmt.Fprintf(&b, "%.2f,%.2f,%s,%d\n", age, hr, angina, y)
	}
	path := filepath.Join(dir, "heart.csv")
	assert.NilError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func writeStudy(t *testing.T, dir, dataset string) string {
	t.Helper()
	cfg := fmt.Sprintf(`dataset: %s
outcome: HeartDisease
seed: 9
positive: "0"
plan:
  folds: 5
  repeats: 2
specs:
  - name: base
    features: [Age, MaxHR]
  - name: angina
    features: [Age, MaxHR, ExerciseAngina]
`, dataset)
	path := filepath.Join(dir, "study.yaml")
	assert.NilError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func Test_Load_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeStudy(t, dir, writeDataset(t, dir, 50, 1))
	cfg, err := Load(path)
	assert.NilError(t, err)
	assert.Assert(t, cfg.Split == 0.8) // default
	assert.Assert(t, cfg.Plan.Folds == 5)
	assert.Assert(t, cfg.Plan.Repeats == 2)
	assert.Assert(t, len(cfg.ModelSpecs()) == 2)
	assert.Assert(t, cfg.ResamplingPlan() == (validate.Plan{Folds: 5, Repeats: 2}))
}

func Test_Load_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("dataset: x.csv\noutcome: Y\nspecs: []\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "no candidate")

	assert.NilError(t, os.WriteFile(path, []byte("outcome: Y\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "dataset path")
}

func Test_Run_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	dataset := writeDataset(t, dir, 300, 2)
	cfg, err := Load(writeStudy(t, dir, dataset))
	assert.NilError(t, err)

	res, err := Run(cfg)
	assert.NilError(t, err)

	assert.Assert(t, len(res.Partition.TrainIdx) == 240)
	assert.Assert(t, len(res.Partition.TestIdx) == 60)
	for _, s := range res.Compared.Specs {
		assert.Assert(t, len(s.Folds) == 10, "want v*r fold results, got %d", len(s.Folds))
	}
	assert.Assert(t, res.Selected.Name == "base" || res.Selected.Name == "angina")
	assert.Assert(t, res.Confusion.Total() == 60)
	assert.Assert(t, res.Positive == "0")

	report := res.Report()
	assert.Assert(t, strings.Contains(report, "train=240 test=60"))
	assert.Assert(t, strings.Contains(report, "mean accuracy"))
	assert.Assert(t, strings.Contains(report, "positive=0"))
	assert.Assert(t, strings.Contains(report, res.Selected.Name))
}

func Test_Run_Reproducible(t *testing.T) {
	dir := t.TempDir()
	dataset := writeDataset(t, dir, 200, 3)
	cfg, err := Load(writeStudy(t, dir, dataset))
	assert.NilError(t, err)

	a, err := Run(cfg)
	assert.NilError(t, err)
	b, err := Run(cfg)
	assert.NilError(t, err)

	assert.DeepEqual(t, a.Partition, b.Partition)
	assert.DeepEqual(t, a.Compared, b.Compared)
	assert.Assert(t, a.Selected.Name == b.Selected.Name)
	assert.DeepEqual(t, a.Confusion, b.Confusion)
}

func Test_Run_DefaultPositiveIsLevelZero(t *testing.T) {
	dir := t.TempDir()
	dataset := writeDataset(t, dir, 200, 4)
	cfg, err := Load(writeStudy(t, dir, dataset))
	assert.NilError(t, err)
	cfg.Positive = ""

	res, err := Run(cfg)
	assert.NilError(t, err)
	assert.Assert(t, res.Positive == "0")
}
