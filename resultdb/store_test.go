package resultdb

import (
	"path/filepath"
	"testing"

	"gotest.tools/assert"

	"crossval/model"
	"crossval/study"
	"crossval/validate"
)

func fakeResult() *study.Result {
	base := model.NewSpec("base", "HeartDisease", "Age", "MaxHR")
	angina := model.NewSpec("angina", "HeartDisease", "Age", "MaxHR", "ExerciseAngina")
	cmp := &validate.Comparison{
		Plan: validate.Plan{Folds: 2, Repeats: 1},
		Seed: 9,
		Specs: []validate.SpecResult{
			{Spec: base, Mean: 0.70, Folds: []validate.FoldResult{
				{Spec: "base", Repeat: 0, Fold: 0, Metric: 0.68},
				{Spec: "base", Repeat: 0, Fold: 1, Metric: 0.72},
			}},
			{Spec: angina, Mean: 0.72, Folds: []validate.FoldResult{
				{Spec: "angina", Repeat: 0, Fold: 0, Metric: 0.71},
				{Spec: "angina", Repeat: 0, Fold: 1, Metric: 0.73},
			}},
		},
	}
	return &study.Result{
		Config: &study.Config{
			Dataset: "heart.csv",
			Outcome: "HeartDisease",
			Seed:    9,
			Split:   0.8,
		},
		Positive: "0",
		Compared: cmp,
		Selected: angina,
		Confusion: &validate.Confusion{
			Labels:   [2]string{"0", "1"},
			Counts:   [2][2]int{{62, 19}, {21, 82}},
			Positive: 0,
		},
	}
}

func Test_SaveRun_Roundtrip(t *testing.T) {
	st, err := OpenMemory()
	assert.NilError(t, err)
	defer st.Close()

	id, err := st.SaveRun(fakeResult())
	assert.NilError(t, err)
	assert.Assert(t, id > 0)

	runs, err := st.Runs()
	assert.NilError(t, err)
	assert.Assert(t, len(runs) == 1)
	r := runs[0]
	assert.Assert(t, r.ID == id)
	assert.Assert(t, r.Dataset == "heart.csv")
	assert.Assert(t, r.Selected == "angina")
	assert.Assert(t, r.Folds == 2 && r.Repeats == 1)
	assert.Assert(t, r.Positive == "0")

	folds, err := st.FoldResults(id)
	assert.NilError(t, err)
	assert.Assert(t, len(folds) == 4)
	assert.DeepEqual(t, folds[0], validate.FoldResult{Spec: "base", Repeat: 0, Fold: 0, Metric: 0.68})
}

func Test_Open_FileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	st, err := Open(path)
	assert.NilError(t, err)
	_, err = st.SaveRun(fakeResult())
	assert.NilError(t, err)
	assert.NilError(t, st.Close())

	// reopen and read back
	st2, err := Open(path)
	assert.NilError(t, err)
	defer st2.Close()
	runs, err := st2.Runs()
	assert.NilError(t, err)
	assert.Assert(t, len(runs) == 1)
}

func Test_Runs_Empty(t *testing.T) {
	st, err := OpenMemory()
	assert.NilError(t, err)
	defer st.Close()
	runs, err := st.Runs()
	assert.NilError(t, err)
	assert.Assert(t, len(runs) == 0)
}
