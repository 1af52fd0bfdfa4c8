package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/tallerfix/internal/domain"
)

func TestGenderMapping(t *testing.T) {
	g, err := domain.GenderFromCode("M")
	require.NoError(t, err)
	assert.Equal(t, domain.GenderMale, g)
	assert.Equal(t, "1", g.DBCode())

	g, err = domain.GenderFromDBCode("2")
	require.NoError(t, err)
	assert.Equal(t, domain.GenderFemale, g)
}

func TestGenderMapping_Unknown(t *testing.T) {
	_, err := domain.GenderFromCode("X")
	assert.Error(t, err)

	_, err = domain.GenderFromDBCode("9")
	assert.Error(t, err)
}

func TestParseFixStatus(t *testing.T) {
	s, err := domain.ParseFixStatus("01")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInRepair, s)
	assert.Equal(t, "en reparación", s.Label())

	_, err = domain.ParseFixStatus("99")
	assert.Error(t, err)
}

func TestFixStatusLabel_UnknownCodeFallsBackToRaw(t *testing.T) {
	assert.Equal(t, "99", domain.FixStatus("99").Label())
}
