package application

import (
	"fmt"

	"github.com/complyview/complyview/internal/domain"
	"github.com/complyview/complyview/internal/domain/menu"
)

// CreateService carries out "Create New" selections. Each intent goes to
// exactly one collaborator.
type CreateService struct {
	controller menu.Controller
	navigator  domain.Navigator
	panels     domain.PanelHost
}

func NewCreateService(controller menu.Controller, navigator domain.Navigator, panels domain.PanelHost) *CreateService {
	return &CreateService{
		controller: controller,
		navigator:  navigator,
		panels:     panels,
	}
}

// Create resolves the choice and applies its intent.
func (s *CreateService) Create(choice domain.CreationChoice) (domain.CreationIntent, error) {
	intent, err := s.controller.Select(choice)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// Apply performs the side effect an intent describes.
func (s *CreateService) Apply(intent domain.CreationIntent) error {
	switch in := intent.(type) {
	case domain.NavigationIntent:
		logger.WithField("target", in.Target).Debug("navigating")
		if err := s.navigator.Navigate(in.Target); err != nil {
			return fmt.Errorf("navigating to %s: %w", in.Target, err)
		}
	case domain.PanelIntent:
		logger.WithField("panel", in.PanelKind).Debug("opening panel")
		if err := s.panels.Open(in); err != nil {
			return fmt.Errorf("opening panel %s: %w", in.PanelKind, err)
		}
	default:
		return fmt.Errorf("unsupported creation intent %T", intent)
	}
	return nil
}
