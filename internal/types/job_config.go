package types

import (
	"fmt"
	"strings"
)

// ExperienceTier is the seniority level a job configuration targets
type ExperienceTier string

// Experience tiers accepted by fit scoring
const (
	TierFresher ExperienceTier = "fresher"
	TierJunior  ExperienceTier = "junior"
	TierMid     ExperienceTier = "mid"
	TierSenior  ExperienceTier = "senior"
	TierLead    ExperienceTier = "lead"
)

// ExperienceTiers lists every tier in ascending seniority
var ExperienceTiers = []ExperienceTier{TierFresher, TierJunior, TierMid, TierSenior, TierLead}

// Valid reports whether t is one of the known tiers.
func (t ExperienceTier) Valid() bool {
	for _, known := range ExperienceTiers {
		if t == known {
			return true
		}
	}
	return false
}

// JobConfiguration is the unit of fit scoring: a target role at a seniority level.
type JobConfiguration struct {
	Role         string         `json:"role" validate:"required"`
	Tier         ExperienceTier `json:"experienceLevel" validate:"omitempty,oneof=fresher junior mid senior lead"`
	Years        int            `json:"yearsOfExperience" validate:"gte=0"`
	Company      string         `json:"company,omitempty"`
	Requirements []string       `json:"specificRequirements,omitempty"`
}

// DefaultJobConfiguration is scored when an upload supplies no usable configuration.
func DefaultJobConfiguration() JobConfiguration {
	return JobConfiguration{Role: "Software Engineer", Tier: TierMid, Years: 2}
}

// Key returns the aggregation key for the configuration, e.g. "Software Engineer (mid, 2y)".
func (c JobConfiguration) Key() string {
	return fmt.Sprintf("%s (%s, %dy)", c.Role, c.Tier, c.Years)
}

// Normalize trims the role and company and replaces an unknown tier or negative years.
func (c JobConfiguration) Normalize() JobConfiguration {
	c.Role = strings.TrimSpace(c.Role)
	c.Company = strings.TrimSpace(c.Company)
	if !c.Tier.Valid() {
		c.Tier = TierMid
	}
	if c.Years < 0 {
		c.Years = 0
	}
	return c
}
