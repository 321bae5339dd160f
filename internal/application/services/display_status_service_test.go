package services

import (
	"testing"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestRealStatus(t *testing.T) {
	svc := NewDisplayStatusService()

	tests := []struct {
		name     string
		provider entities.Provider
		want     bool
	}{
		{"available", entities.Provider{Status: entities.StatusAvailable}, true},
		{"online", entities.Provider{Status: entities.StatusOnline}, true},
		{"offline even when live", entities.Provider{Status: entities.StatusOffline, IsLive: true}, false},
		{"empty status", entities.Provider{Status: "", IsLive: true}, false},
		{"busy but live", entities.Provider{Status: entities.StatusBusy, IsLive: true}, true},
		{"busy not live", entities.Provider{Status: entities.StatusBusy, IsLive: false}, false},
		{"showcase never bookable", entities.Provider{Status: entities.StatusAvailable, IsLive: true, IsShowcaseProfile: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.RealStatus(&tt.provider))
		})
	}
}

func TestDisplayStatus_OnlyTwoValues(t *testing.T) {
	svc := NewDisplayStatusService()

	available := &entities.Provider{Status: entities.StatusAvailable}
	assert.Equal(t, entities.DisplayAvailable, svc.DisplayStatus(available))

	// Everything that is not bookable renders Busy, never Offline or blank.
	for _, p := range []*entities.Provider{
		{Status: entities.StatusOffline},
		{Status: ""},
		{Status: entities.StatusBusy},
		{Status: "on holiday"},
	} {
		assert.Equal(t, entities.DisplayBusy, svc.DisplayStatus(p))
	}
}
