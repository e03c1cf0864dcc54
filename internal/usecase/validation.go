package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/royaisolutions/agency-api/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var ValidBudgets = []string{
	"$2,500 - $5,000",
	"$5,000 - $10,000",
	"$10,000 - $25,000",
	"$25,000 - $50,000",
	"$50,000+",
}

var ValidTimelines = []string{
	"Urgent (1-2 weeks)",
	"Soon (2-4 weeks)",
	"Flexible (1-3 months)",
	"Planning phase (3+ months)",
}

var ValidServiceIDs = []string{"web", "automation", "leads"}

func ValidateSubmitLeadInput(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errors = append(errors, ValidationError{"firstName", "is required"})
	} else if len(input.FirstName) > 50 {
		errors = append(errors, ValidationError{"firstName", "must be less than 50 characters"})
	}

	if strings.TrimSpace(input.LastName) == "" {
		errors = append(errors, ValidationError{"lastName", "is required"})
	} else if len(input.LastName) > 50 {
		errors = append(errors, ValidationError{"lastName", "must be less than 50 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !emailRegex.MatchString(input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	} else if len(input.Email) > 255 {
		errors = append(errors, ValidationError{"email", "must be less than 255 characters"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if len(input.Phone) > 20 {
		errors = append(errors, ValidationError{"phone", "must be less than 20 characters"})
	}

	if strings.TrimSpace(input.Company) == "" {
		errors = append(errors, ValidationError{"company", "is required"})
	} else if len(input.Company) > 100 {
		errors = append(errors, ValidationError{"company", "must be less than 100 characters"})
	}

	if strings.TrimSpace(input.Budget) == "" {
		errors = append(errors, ValidationError{"budget", "is required"})
	} else if len(input.Budget) > 50 {
		errors = append(errors, ValidationError{"budget", "must be less than 50 characters"})
	}

	if strings.TrimSpace(input.Needs) == "" {
		errors = append(errors, ValidationError{"needs", "is required"})
	} else if len(input.Needs) > 1000 {
		errors = append(errors, ValidationError{"needs", "must be less than 1000 characters"})
	}

	return errors
}

func ValidateSubmitProposalInput(input SubmitProposalInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errors = append(errors, ValidationError{"firstName", "is required"})
	} else if len(input.FirstName) > 100 {
		errors = append(errors, ValidationError{"firstName", "is too long"})
	}

	if strings.TrimSpace(input.LastName) == "" {
		errors = append(errors, ValidationError{"lastName", "is required"})
	} else if len(input.LastName) > 100 {
		errors = append(errors, ValidationError{"lastName", "is too long"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !emailRegex.MatchString(input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	} else if len(input.Email) > 255 {
		errors = append(errors, ValidationError{"email", "is too long"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if len(input.Phone) > 30 {
		errors = append(errors, ValidationError{"phone", "is too long"})
	}

	if strings.TrimSpace(input.CompanyName) == "" {
		errors = append(errors, ValidationError{"companyName", "is required"})
	} else if len(input.CompanyName) > 200 {
		errors = append(errors, ValidationError{"companyName", "is too long"})
	}

	if input.Industry != "" && len(input.Industry) > 100 {
		errors = append(errors, ValidationError{"industry", "is too long"})
	}

	if len(input.Services) == 0 {
		errors = append(errors, ValidationError{"services", "at least one service must be selected"})
	} else {
		for _, s := range input.Services {
			if !isValidServiceID(s.ID) {
				errors = append(errors, ValidationError{"services", "invalid service selected"})
				break
			}
		}
	}

	if !contains(ValidBudgets, input.Budget) {
		errors = append(errors, ValidationError{"budget", "invalid budget range"})
	}

	if !contains(ValidTimelines, input.Timeline) {
		errors = append(errors, ValidationError{"timeline", "invalid timeline"})
	}

	if len(strings.TrimSpace(input.Requirements)) < 10 {
		errors = append(errors, ValidationError{"requirements", "must be at least 10 characters"})
	} else if len(input.Requirements) > 5000 {
		errors = append(errors, ValidationError{"requirements", "is too long"})
	}

	if input.CurrentChallenges != "" && len(input.CurrentChallenges) > 5000 {
		errors = append(errors, ValidationError{"currentChallenges", "is too long"})
	}

	return errors
}

func isValidServiceID(id string) bool {
	return contains(ValidServiceIDs, id)
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

// ValidPaymentType accepts the two checkout modes.
func ValidPaymentType(t string) bool {
	return t == entity.PaymentTypeDeposit || t == entity.PaymentTypeFull
}
