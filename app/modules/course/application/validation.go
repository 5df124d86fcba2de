package courseservice

import (
	"fmt"
	"strings"

	coursedb "github.com/Black-And-White-Club/frolf-stats/app/modules/course/infrastructure/repositories"
)

func validateCourse(in CourseInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Rating != nil && *in.Rating < 0 {
		return fmt.Errorf("%w: rating must not be negative", ErrValidation)
	}
	if in.Holes != nil && *in.Holes < 0 {
		return fmt.Errorf("%w: holes must not be negative", ErrValidation)
	}
	return nil
}

func validateLayout(in LayoutInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: layout name is required", ErrValidation)
	}
	seen := make(map[int]bool, len(in.Holes))
	for _, h := range in.Holes {
		if h.HoleNumber <= 0 {
			return fmt.Errorf("%w: hole_number must be positive", ErrValidation)
		}
		if seen[h.HoleNumber] {
			return fmt.Errorf("%w: duplicate hole_number %d", ErrValidation, h.HoleNumber)
		}
		seen[h.HoleNumber] = true
	}
	return nil
}

func courseFromInput(in CourseInput) *coursedb.Course {
	return &coursedb.Course{
		Name:              strings.TrimSpace(in.Name),
		Location:          in.Location,
		Description:       in.Description,
		City:              in.City,
		State:             in.State,
		Country:           in.Country,
		Holes:             in.Holes,
		Rating:            in.Rating,
		ReviewsCount:      in.ReviewsCount,
		Link:              in.Link,
		Conditions:        in.Conditions,
		ConditionsUpdated: in.ConditionsUpdated,
	}
}

func layoutFromInput(in LayoutInput) *coursedb.CourseLayout {
	layout := &coursedb.CourseLayout{
		Name:       strings.TrimSpace(in.Name),
		Par:        in.Par,
		Length:     in.Length,
		Difficulty: in.Difficulty,
	}
	for _, h := range in.Holes {
		layout.Holes = append(layout.Holes, &coursedb.Hole{
			HoleNumber: h.HoleNumber,
			Par:        h.Par,
			Distance:   h.Distance,
		})
	}
	return layout
}
