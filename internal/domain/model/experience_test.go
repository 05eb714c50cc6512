package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExperienceInput_Validate(t *testing.T) {
	end := date(2021, time.March, 1)
	early := date(2019, time.January, 1)

	tests := []struct {
		name    string
		in      ExperienceInput
		wantErr error
		anyErr  bool
	}{
		{
			name: "valid past role",
			in:   ExperienceInput{Role: "Dev", Company: "Acme", StartDate: date(2020, time.January, 1), EndDate: &end},
		},
		{
			name: "valid current role",
			in:   ExperienceInput{Role: "Dev", Company: "Acme", StartDate: date(2020, time.January, 1), Current: true},
		},
		{
			name: "same start and end",
			in:   ExperienceInput{Role: "Dev", Company: "Acme", StartDate: end, EndDate: &end},
		},
		{
			name:    "current with end date",
			in:      ExperienceInput{Role: "Dev", Company: "Acme", StartDate: date(2020, time.January, 1), EndDate: &end, Current: true},
			wantErr: ErrCurrentWithEndDate,
		},
		{
			name:    "end before start",
			in:      ExperienceInput{Role: "Dev", Company: "Acme", StartDate: date(2020, time.January, 1), EndDate: &early},
			wantErr: ErrEndBeforeStart,
		},
		{
			name:   "missing role",
			in:     ExperienceInput{Company: "Acme", StartDate: date(2020, time.January, 1)},
			anyErr: true,
		},
		{
			name:   "missing start",
			in:     ExperienceInput{Role: "Dev", Company: "Acme"},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsDateViolation(err))
			case tt.anyErr:
				require.Error(t, err)
				assert.False(t, IsDateViolation(err))
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestExperienceInput_Normalize(t *testing.T) {
	blank := "   "
	in := ExperienceInput{Role: "  Dev ", Company: " Acme", Description: &blank}
	in.Normalize()
	assert.Equal(t, "Dev", in.Role)
	assert.Equal(t, "Acme", in.Company)
	assert.Nil(t, in.Description)
}

func TestSortExperiences(t *testing.T) {
	exps := []Experience{
		{ID: "old", StartDate: date(2015, time.May, 1)},
		{ID: "current-old", StartDate: date(2018, time.May, 1), Current: true},
		{ID: "recent", StartDate: date(2021, time.May, 1)},
		{ID: "current-new", StartDate: date(2022, time.May, 1), Current: true},
	}

	SortExperiences(exps)

	ids := make([]string, len(exps))
	for i, e := range exps {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"current-new", "current-old", "recent", "old"}, ids)
}
