package services

import (
	"github.com/indastreet/providerdiscovery/internal/domain/entities"
)

// DisplayStatusService derives the two-valued presentation status shown on
// provider cards, decoupled from the raw status vocabulary. Every live
// provider shows Available until an external booking action changes its
// state; that transition is owned by the booking subsystem, not by us.
type DisplayStatusService struct{}

// NewDisplayStatusService creates a new display status service
func NewDisplayStatusService() *DisplayStatusService {
	return &DisplayStatusService{}
}

// RealStatus reports whether the provider is actually bookable/online:
// true when the raw status is available/online, or when the provider is
// published and the status is not explicitly offline/empty.
func (s *DisplayStatusService) RealStatus(p *entities.Provider) bool {
	// Showcase clones are never bookable, whatever their copied fields say.
	if p.IsShowcaseProfile {
		return false
	}
	switch p.Status {
	case entities.StatusAvailable, entities.StatusOnline:
		return true
	case entities.StatusOffline, "":
		return false
	default:
		return p.IsLive
	}
}

// DisplayStatus returns Available when RealStatus is true and Busy
// otherwise. No other value is ever produced.
func (s *DisplayStatusService) DisplayStatus(p *entities.Provider) entities.DisplayStatus {
	if s.RealStatus(p) {
		return entities.DisplayAvailable
	}
	return entities.DisplayBusy
}
