package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type Profile struct {
	ClassesPerSemester          int             `json:"classesPerSemester" yaml:"classesPerSemester" validate:"gte=3"`
	CoursesTaken                []string        `json:"coursesTaken" yaml:"coursesTaken" validate:"dive,required"`
	RemainingRequired           []string        `json:"remainingRequired" yaml:"remainingRequired" validate:"dive,required"`
	NecessaryCourses            []string        `json:"necessaryCourses" yaml:"necessaryCourses" validate:"dive,required"`
	AvailableTimeBlocks         []string        `json:"availableTimes" yaml:"availableTimes"`
	DayAvailability             map[string]bool `json:"dayAvailability" yaml:"dayAvailability"`
	DayBalance                  DayBalance      `json:"dayBalance" yaml:"dayBalance"`
	RequiredCoursesThisSemester int             `json:"requiredCoursesThisSemester" yaml:"requiredCoursesThisSemester" validate:"gte=0"`
	PreferredDepartments        []string        `json:"preferredDepts" yaml:"preferredDepts"`
	NeedsWrit                   bool            `json:"needWRIT" yaml:"needWRIT"`
}

// DayAllowed checks the day against the availability map. An empty map leaves every day open, otherwise an absent day is closed
func (profile Profile) DayAllowed(day Day) bool {
	if len(profile.DayAvailability) == 0 {
		return true
	}
	return profile.DayAvailability[day.Code()]
}

// TimeAllowed checks a descriptor's time block against the allowed blocks. No allowed blocks, or a "TBA" block, always passes
func (profile Profile) TimeAllowed(block string) bool {
	if len(profile.AvailableTimeBlocks) == 0 || block == "TBA" {
		return true
	}
	return slices.Contains(profile.AvailableTimeBlocks, strings.TrimSpace(block))
}

// ProfileFromFile decodes a preference profile from a JSON or YAML file
func ProfileFromFile(file string) (Profile, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Profile{}, fmt.Errorf("cannot read profile: %w", err)
	}

	var profile Profile
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &profile)
	case ".json":
		err = json.Unmarshal(bytes, &profile)
	default:
		return Profile{}, fmt.Errorf("unsupported profile format: %s", ext)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("cannot decode profile %q: %w", file, err)
	}
	return profile, nil
}

var profileValidator = validator.New()

// ValidateProfile reports every inconsistency of the profile, in a stable order. An empty slice means the profile is usable
func ValidateProfile(profile Profile) []string {
	errs := make([]string, 0)

	if err := profileValidator.Struct(profile); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return append(errs, err.Error())
		}
		for _, fieldError := range validationErrors {
			errs = append(errs, fmt.Sprintf("invalid %v: failed %q %v", fieldError.Namespace(), fieldError.Tag(), fieldError.Param()))
		}
	}

	availabilityCodes := lo.Keys(profile.DayAvailability)
	slices.Sort(availabilityCodes)
	for _, code := range availabilityCodes {
		if _, ok := ParseDayCode(code); !ok {
			errs = append(errs, fmt.Sprintf("unknown day %q in day availability", code))
		}
	}

	classes := profile.ClassesPerSemester
	balance := profile.DayBalance
	if balance.MWF+balance.TTh != classes {
		errs = append(errs, fmt.Sprintf("the total of MWF (%d) and TTh (%d) classes must match the number of classes per semester (%d)", balance.MWF, balance.TTh, classes))
	}
	if len(profile.NecessaryCourses) > classes {
		errs = append(errs, fmt.Sprintf("%d necessary courses were given but at most %d fit in a semester", len(profile.NecessaryCourses), classes))
	}
	if profile.RequiredCoursesThisSemester > len(profile.RemainingRequired) {
		errs = append(errs, fmt.Sprintf("%d required courses were requested but only %d remain", profile.RequiredCoursesThisSemester, len(profile.RemainingRequired)))
	}
	if profile.RequiredCoursesThisSemester > classes {
		errs = append(errs, fmt.Sprintf("%d required courses were requested but the semester holds %d classes", profile.RequiredCoursesThisSemester, classes))
	}

	takenAgain := lo.Uniq(lo.Filter(profile.CoursesTaken, func(code string, _ int) bool {
		return slices.Contains(profile.NecessaryCourses, code) || slices.Contains(profile.RemainingRequired, code)
	}))
	if len(takenAgain) > 0 {
		errs = append(errs, "courses listed as both taken and necessary or remaining: "+strings.Join(takenAgain, ", "))
	}

	notRemaining := lo.Without(profile.NecessaryCourses, profile.RemainingRequired...)
	if len(notRemaining) > 0 {
		errs = append(errs, "necessary courses not in remaining required: "+strings.Join(notRemaining, ", "))
	}
	if len(profile.NecessaryCourses) > 0 && len(profile.NecessaryCourses) > profile.RequiredCoursesThisSemester {
		errs = append(errs, fmt.Sprintf("%d necessary courses were given but only %d required courses were requested", len(profile.NecessaryCourses), profile.RequiredCoursesThisSemester))
	}

	return errs
}
