package domain

// Phase is the state of the behavioral login verifier
type Phase string

const (
	PhaseEnroll  Phase = "enroll"
	PhaseAuth    Phase = "auth"
	PhaseSuccess Phase = "success"
	PhaseFail    Phase = "fail"
)

// Outcome describes what a single biometric submission did
type Outcome string

const (
	OutcomeSampleRecorded     Outcome = "sample_recorded"
	OutcomeEnrollmentComplete Outcome = "enrollment_complete"
	OutcomeSampleTooShort     Outcome = "sample_too_short"
	OutcomeAuthenticated      Outcome = "authenticated"
	OutcomePatternMismatch    Outcome = "pattern_mismatch"
	OutcomeLockedOut          Outcome = "locked_out"
)

// BiometricSample is one submission of inter-keystroke intervals in milliseconds
type BiometricSample struct {
	Intervals []float64 `json:"intervals"`
}

// EnrollmentProfile is the persisted credential derived from enrollment
type EnrollmentProfile struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// BiometricStatus is the verifier state as exposed to callers
type BiometricStatus struct {
	Phase            Phase   `json:"phase"`
	SamplesCollected int     `json:"samplesCollected"`
	SamplesRequired  int     `json:"samplesRequired"`
	Failures         int     `json:"failures"`
	MaxFailures      int     `json:"maxFailures"`
	Outcome          Outcome `json:"outcome,omitempty"`
	Message          string  `json:"message,omitempty"`
}
