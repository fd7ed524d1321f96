package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/logger"
	"github.com/ecomart/backend/internal/metrics"
)

// Store keys of the enrolled profile
const (
	KeyBiometricMean = "biometric_mean"
	KeyBiometricStd  = "biometric_std"
)

// User-facing messages
const (
	msgSampleTooShort     = "Type a bit more for a good sample."
	msgSampleRecorded     = "Sample %d of %d recorded."
	msgEnrollmentComplete = "Enrollment complete. Type your phrase to log in."
	msgAuthenticated      = "Login successful! Welcome back."
	msgPatternMismatch    = "Pattern not recognized. Try again."
	msgLockedOut          = "Authentication failed. Please try again or use fallback."
)

// BiometricConfig holds configuration for the typing-rhythm verifier
type BiometricConfig struct {
	MinIntervals      int
	EnrollmentSamples int
	Tolerance         float64 // maximum relative deviation of mean and std
	MaxFailures       int
}

// BiometricVerifier is the enroll -> auth -> success|fail state machine of a
// single login session. The enrolled profile is the only persisted state.
type BiometricVerifier struct {
	store  domain.CacheRepository
	config BiometricConfig
	log    *zap.Logger

	mu       sync.Mutex
	phase    domain.Phase
	samples  [][]float64
	failures int
}

// NewBiometricVerifier creates a verifier in the enroll phase
func NewBiometricVerifier(store domain.CacheRepository, config BiometricConfig, log *zap.Logger) *BiometricVerifier {
	if config.MinIntervals <= 0 {
		config.MinIntervals = 5
	}
	if config.EnrollmentSamples <= 0 {
		config.EnrollmentSamples = 3
	}
	if config.Tolerance <= 0 {
		config.Tolerance = 0.3
	}
	if config.MaxFailures <= 0 {
		config.MaxFailures = 3
	}
	return &BiometricVerifier{
		store:  store,
		config: config,
		log:    logger.OrNop(log),
		phase:  domain.PhaseEnroll,
	}
}

// Restore moves the verifier to auth when an enrolled profile is already persisted
func (v *BiometricVerifier) Restore(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.loadProfile(ctx); err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil
		}
		return err
	}
	v.phase = domain.PhaseAuth
	v.log.Info("restored enrolled typing profile")
	return nil
}

// Status returns the current state without changing it
func (v *BiometricVerifier) Status() domain.BiometricStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status("", "")
}

// Submit processes one typing sample. The returned status is always valid;
// err is one of ErrSampleTooShort, ErrPatternMismatch, ErrVerificationLocked,
// ErrInvalidPhase, ErrInvalidRequest, or a store failure.
func (v *BiometricVerifier) Submit(ctx context.Context, sample domain.BiometricSample) (domain.BiometricStatus, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := validateIntervals(sample.Intervals); err != nil {
		return v.status("", ""), err
	}

	var (
		status domain.BiometricStatus
		err    error
	)
	switch v.phase {
	case domain.PhaseEnroll:
		status, err = v.enroll(ctx, sample.Intervals)
	case domain.PhaseAuth:
		status, err = v.authenticate(ctx, sample.Intervals)
	default:
		return v.status("", ""), fmt.Errorf("%w: %s", domain.ErrInvalidPhase, v.phase)
	}

	if status.Outcome != "" {
		metrics.IncBiometricOutcome(string(status.Outcome))
	}
	return status, err
}

func (v *BiometricVerifier) enroll(ctx context.Context, intervals []float64) (domain.BiometricStatus, error) {
	if len(intervals) < v.config.MinIntervals {
		return v.status(domain.OutcomeSampleTooShort, msgSampleTooShort), domain.ErrSampleTooShort
	}

	sample := make([]float64, len(intervals))
	copy(sample, intervals)
	v.samples = append(v.samples, sample)

	if len(v.samples) < v.config.EnrollmentSamples {
		return v.status(domain.OutcomeSampleRecorded,
			fmt.Sprintf(msgSampleRecorded, len(v.samples), v.config.EnrollmentSamples)), nil
	}

	var pooled []float64
	for _, s := range v.samples {
		pooled = append(pooled, s...)
	}
	mean, std := meanStd(pooled)

	if err := v.saveProfile(ctx, domain.EnrollmentProfile{Mean: mean, StdDev: std}); err != nil {
		// Drop the last sample so the same submission can complete enrollment later
		v.samples = v.samples[:len(v.samples)-1]
		return v.status("", ""), err
	}

	v.phase = domain.PhaseAuth
	v.log.Info("typing profile enrolled", zap.Float64("mean", mean), zap.Float64("std", std))
	return v.status(domain.OutcomeEnrollmentComplete, msgEnrollmentComplete), nil
}

func (v *BiometricVerifier) authenticate(ctx context.Context, intervals []float64) (domain.BiometricStatus, error) {
	if len(intervals) < v.config.MinIntervals {
		return v.status(domain.OutcomeSampleTooShort, msgSampleTooShort), domain.ErrSampleTooShort
	}

	profile, err := v.loadProfile(ctx)
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		return v.status("", ""), err
	}
	// A missing profile compares as zero and therefore never passes

	mean, std := meanStd(intervals)
	if withinTolerance(mean, profile.Mean, v.config.Tolerance) &&
		withinTolerance(std, profile.StdDev, v.config.Tolerance) {
		v.phase = domain.PhaseSuccess
		v.log.Info("typing pattern authenticated")
		return v.status(domain.OutcomeAuthenticated, msgAuthenticated), nil
	}

	v.failures++
	v.log.Debug("typing pattern rejected",
		zap.Float64("mean", mean), zap.Float64("std", std),
		zap.Float64("enrolled_mean", profile.Mean), zap.Float64("enrolled_std", profile.StdDev),
		zap.Int("failures", v.failures))

	if v.failures >= v.config.MaxFailures {
		v.phase = domain.PhaseFail
		v.log.Warn("typing verification locked", zap.Int("failures", v.failures))
		return v.status(domain.OutcomeLockedOut, msgLockedOut), domain.ErrVerificationLocked
	}
	return v.status(domain.OutcomePatternMismatch, msgPatternMismatch), domain.ErrPatternMismatch
}

// Reset clears samples, failures and the persisted profile and returns to
// enroll. It is only accepted once verification has finished.
func (v *BiometricVerifier) Reset(ctx context.Context) (domain.BiometricStatus, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phase != domain.PhaseSuccess && v.phase != domain.PhaseFail {
		return v.status("", ""), fmt.Errorf("%w: reset from %s", domain.ErrInvalidPhase, v.phase)
	}

	for _, key := range []string{KeyBiometricMean, KeyBiometricStd} {
		if err := v.store.Delete(ctx, key); err != nil {
			return v.status("", ""), fmt.Errorf("clear %s: %w", key, err)
		}
	}

	v.phase = domain.PhaseEnroll
	v.samples = nil
	v.failures = 0
	return v.status("", ""), nil
}

func (v *BiometricVerifier) status(outcome domain.Outcome, message string) domain.BiometricStatus {
	return domain.BiometricStatus{
		Phase:            v.phase,
		SamplesCollected: len(v.samples),
		SamplesRequired:  v.config.EnrollmentSamples,
		Failures:         v.failures,
		MaxFailures:      v.config.MaxFailures,
		Outcome:          outcome,
		Message:          message,
	}
}

func (v *BiometricVerifier) saveProfile(ctx context.Context, p domain.EnrollmentProfile) error {
	if err := v.store.Set(ctx, KeyBiometricMean, []byte(strconv.FormatFloat(p.Mean, 'g', -1, 64)), 0); err != nil {
		return fmt.Errorf("persist %s: %w", KeyBiometricMean, err)
	}
	if err := v.store.Set(ctx, KeyBiometricStd, []byte(strconv.FormatFloat(p.StdDev, 'g', -1, 64)), 0); err != nil {
		// No half-written profile may survive
		if delErr := v.store.Delete(ctx, KeyBiometricMean); delErr != nil {
			v.log.Warn("failed to roll back enrolled mean", zap.Error(delErr))
		}
		return fmt.Errorf("persist %s: %w", KeyBiometricStd, err)
	}
	return nil
}

func (v *BiometricVerifier) loadProfile(ctx context.Context) (domain.EnrollmentProfile, error) {
	var p domain.EnrollmentProfile
	var err error
	if p.Mean, err = v.loadFloat(ctx, KeyBiometricMean); err != nil {
		return domain.EnrollmentProfile{}, err
	}
	if p.StdDev, err = v.loadFloat(ctx, KeyBiometricStd); err != nil {
		return domain.EnrollmentProfile{}, err
	}
	return p, nil
}

func (v *BiometricVerifier) loadFloat(ctx context.Context, key string) (float64, error) {
	raw, err := v.store.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		// Unreadable values are treated like a missing profile
		return 0, fmt.Errorf("%w: %s is not a number", domain.ErrCacheMiss, key)
	}
	return f, nil
}

func validateIntervals(intervals []float64) error {
	for _, d := range intervals {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: interval %v", domain.ErrInvalidRequest, d)
		}
	}
	return nil
}

// meanStd returns the mean and population standard deviation of xs
func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(sq / float64(len(xs)))
}

// withinTolerance reports |candidate-enrolled|/enrolled < tolerance.
// A zero enrolled value never passes.
func withinTolerance(candidate, enrolled, tolerance float64) bool {
	if enrolled <= 0 {
		return false
	}
	return math.Abs(candidate-enrolled)/enrolled < tolerance
}
