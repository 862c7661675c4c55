package project

import (
	"fmt"

	"github.com/piwi3910/SheetYield/internal/model"
)

// SaveJob writes a job, including its last plan if any, to path.
func SaveJob(path string, job model.Job) error {
	return writeJSON(path, job)
}

// LoadJob reads a job from path and checks that its sheet and figures are
// still valid input for packing.
func LoadJob(path string) (model.Job, error) {
	var job model.Job
	if err := readJSON(path, &job); err != nil {
		return model.Job{}, err
	}
	if err := model.ValidateInput(job.Sheet, job.Figures); err != nil {
		return model.Job{}, fmt.Errorf("job %s: %w", path, err)
	}
	if job.Settings.Order == "" {
		job.Settings.Order = model.SortArea
	}
	return job, nil
}
