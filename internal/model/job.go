package model

// Job is a saved cutting job: one sheet type, the figure list and the
// settings it was planned with. Plan is nil until the job has been planned.
type Job struct {
	Name     string          `json:"name"`
	Sheet    Sheet           `json:"sheet"`
	Figures  []Figure        `json:"figures"`
	Settings PlanSettings    `json:"settings"`
	Plan     *ProductionPlan `json:"plan,omitempty"`
}

func NewJob() Job {
	return Job{
		Name:     "Untitled Job",
		Sheet:    NewSheet(2440, 1220, 10),
		Figures:  []Figure{},
		Settings: DefaultSettings(),
	}
}

// AddFigure appends a figure type, giving it an ID when it has none.
func (j *Job) AddFigure(f Figure) {
	if f.ID == "" {
		f.ID = NewFigure(f.Width, f.Height, f.Necessary).ID
	}
	j.Figures = append(j.Figures, f)
	j.Plan = nil
}

// RemoveFigure removes a figure type by ID. Returns true if found and removed.
func (j *Job) RemoveFigure(id string) bool {
	for i, f := range j.Figures {
		if f.ID == id {
			j.Figures = append(j.Figures[:i], j.Figures[i+1:]...)
			j.Plan = nil
			return true
		}
	}
	return false
}

// TotalDemand returns the number of figures demanded across all types.
func (j Job) TotalDemand() int {
	total := 0
	for _, f := range j.Figures {
		total += f.Necessary
	}
	return total
}
