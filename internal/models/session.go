package models

type Result string

const (
	ResultUnset Result = ""
	ResultYes   Result = "YES"
	ResultNo    Result = "NO"
)

// Valid reports whether r is one of the two loggable results.
func (r Result) Valid() bool {
	return r == ResultYes || r == ResultNo
}

// Session is the outcome logged for one machine on one calendar day.
// Date is a YYYY-MM-DD string, never a timestamp.
type Session struct {
	ID        string `json:"id" toml:"id" yaml:"id"`
	MachineID string `json:"machineId" toml:"machine_id" yaml:"machineId"`
	Date      string `json:"date" toml:"date" yaml:"date"`
	Result    Result `json:"result" toml:"result" yaml:"result"`
	Notes     string `json:"notes" toml:"notes" yaml:"notes"`
	Photo     string `json:"photo" toml:"photo" yaml:"photo"`
	Progress  string `json:"progress" toml:"progress" yaml:"progress"`
}
