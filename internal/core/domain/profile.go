package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidActivityLevel   = errors.New("invalid activity level")
	ErrInvalidHealthObjective = errors.New("invalid health objective")
)

const DefaultStepGoal = 6000

type ActivityLevel string

// Stored values keep the labels already present in existing installations.
const (
	ActivitySedentary  ActivityLevel = "Sedentario"
	ActivityLight      ActivityLevel = "Ligero"
	ActivityModerate   ActivityLevel = "Moderado"
	ActivityActive     ActivityLevel = "Activo"
	ActivityVeryActive ActivityLevel = "Muy Activo"
)

var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

var activityAliases = map[string]ActivityLevel{
	"sedentary":   ActivitySedentary,
	"light":       ActivityLight,
	"moderate":    ActivityModerate,
	"active":      ActivityActive,
	"very_active": ActivityVeryActive,
	"veryactive":  ActivityVeryActive,
}

func ParseActivityLevel(value string) (ActivityLevel, error) {
	trimmed := strings.TrimSpace(value)
	for level := range activityFactors {
		if strings.EqualFold(string(level), trimmed) {
			return level, nil
		}
	}
	if level, ok := activityAliases[strings.ToLower(trimmed)]; ok {
		return level, nil
	}
	return "", ErrInvalidActivityLevel
}

// Factor is the Harris-Benedict activity multiplier.
func (a ActivityLevel) Factor() float64 {
	if f, ok := activityFactors[a]; ok {
		return f
	}
	return activityFactors[ActivitySedentary]
}

type HealthObjective string

const (
	ObjectiveLoseWeight     HealthObjective = "Perder peso"
	ObjectiveMaintainWeight HealthObjective = "Mantener peso"
	ObjectiveGainMass       HealthObjective = "Ganar masa"
)

var objectiveAliases = map[string]HealthObjective{
	"lose_weight":     ObjectiveLoseWeight,
	"maintain_weight": ObjectiveMaintainWeight,
	"gain_mass":       ObjectiveGainMass,
}

func ParseHealthObjective(value string) (HealthObjective, error) {
	trimmed := strings.TrimSpace(value)
	for _, o := range []HealthObjective{ObjectiveLoseWeight, ObjectiveMaintainWeight, ObjectiveGainMass} {
		if strings.EqualFold(string(o), trimmed) {
			return o, nil
		}
	}
	if o, ok := objectiveAliases[strings.ToLower(trimmed)]; ok {
		return o, nil
	}
	return "", ErrInvalidHealthObjective
}

type UserProfile struct {
	Age           int     `json:"age"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	DailyStepGoal int     `json:"daily_step_goal"`
}

func DefaultProfile(goal int) UserProfile {
	if goal <= 0 {
		goal = DefaultStepGoal
	}
	return UserProfile{DailyStepGoal: goal}
}

// ProfileInput carries the raw form values of a profile edit.
type ProfileInput struct {
	Age    string
	Height string
	Weight string
	Goal   string
}

// ApplyProfileInput never rejects an edit: unparseable or negative numbers
// become 0, and an unusable goal keeps the prior goal.
func ApplyProfileInput(prior UserProfile, in ProfileInput) UserProfile {
	out := UserProfile{
		Age:           parseNonNegativeInt(in.Age),
		HeightCm:      parseNonNegativeFloat(in.Height),
		WeightKg:      parseNonNegativeFloat(in.Weight),
		DailyStepGoal: prior.DailyStepGoal,
	}
	if goal, err := strconv.Atoi(strings.TrimSpace(in.Goal)); err == nil && goal > 0 {
		out.DailyStepGoal = goal
	}
	if out.DailyStepGoal <= 0 {
		out.DailyStepGoal = DefaultStepGoal
	}
	return out
}

func parseNonNegativeInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseNonNegativeFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

type HealthSettings struct {
	ActivityLevel   ActivityLevel   `json:"activity_level"`
	HealthObjective HealthObjective `json:"health_objective"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func DefaultHealthSettings() HealthSettings {
	return HealthSettings{
		ActivityLevel:   ActivitySedentary,
		HealthObjective: ObjectiveMaintainWeight,
	}
}

const (
	BMIUnderweight = "underweight"
	BMINormal      = "normal"
	BMIOverweight  = "overweight"
	BMIObese       = "obese"
)

type HealthReport struct {
	BMI           float64 `json:"bmi"`
	BMICategory   string  `json:"bmi_category,omitempty"`
	BMR           float64 `json:"bmr_kcal"`
	DailyCalories float64 `json:"daily_calories_kcal"`
}

// NewHealthReport derives BMI and the Harris-Benedict basal rate. Values
// needing a missing input are left at zero.
func NewHealthReport(p UserProfile, s HealthSettings) HealthReport {
	var r HealthReport
	if p.HeightCm > 0 && p.WeightKg > 0 {
		m := p.HeightCm / 100
		r.BMI = p.WeightKg / (m * m)
		switch {
		case r.BMI < 18.5:
			r.BMICategory = BMIUnderweight
		case r.BMI < 25:
			r.BMICategory = BMINormal
		case r.BMI < 30:
			r.BMICategory = BMIOverweight
		default:
			r.BMICategory = BMIObese
		}
	}
	if p.Age > 0 && p.HeightCm > 0 && p.WeightKg > 0 {
		r.BMR = 88.362 + 13.397*p.WeightKg + 4.799*p.HeightCm - 5.677*float64(p.Age)
		r.DailyCalories = r.BMR * s.ActivityLevel.Factor()
	}
	return r
}
