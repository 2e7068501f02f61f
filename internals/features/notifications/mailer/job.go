package mailer

import "encoding/json"

// JobType: jenis email yang dikirim out-of-band
type JobType string

const (
	JobWelcome         JobType = "welcome"
	JobResetPassword   JobType = "reset_password"
	JobPasswordChanged JobType = "password_changed"
)

// Job adalah satu pekerjaan kirim email di antrian
type Job struct {
	Type JobType           `json:"type"`
	To   string            `json:"to"`
	Data map[string]string `json:"data,omitempty"`
}

func (j Job) Marshal() ([]byte, error) {
	return json.Marshal(j)
}

func UnmarshalJob(raw []byte) (Job, error) {
	var j Job
	err := json.Unmarshal(raw, &j)
	return j, err
}
