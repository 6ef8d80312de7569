package simulator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
	"github.com/nguyentantai21042004/legal-os/internal/gemini"
)

func (s *implService) Create(ctx context.Context) (*domain.Simulation, error) {
	sim := domain.NewSimulation(uuid.NewString(), s.now())
	if err := s.repo.CreateSimulation(ctx, sim); err != nil {
		return nil, fmt.Errorf("create simulation: %w", err)
	}
	s.logger.Info(ctx, "Created simulation %s", sim.ID)
	return sim, nil
}

func (s *implService) Get(ctx context.Context, simID string) (*domain.Simulation, error) {
	if err := validID(simID); err != nil {
		return nil, err
	}
	return s.repo.GetSimulation(ctx, simID)
}

func (s *implService) Start(ctx context.Context, simID string, role domain.Party, materials []domain.Upload) (*domain.Simulation, error) {
	if role != domain.PartyPlaintiff && role != domain.PartyDefendant {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	sim, release, err := s.load(ctx, simID, domain.SimConfiguring, "start")
	if err != nil {
		return nil, err
	}
	defer release()

	text := s.readMaterials(ctx, sim.ID, materials)
	if text == "" {
		return nil, ErrNoMaterials
	}

	reply, err := s.generate(ctx, openingPrompt(role, text))
	if err != nil {
		return nil, fmt.Errorf("open hearing: %w", err)
	}

	now := s.now()
	sim.UserRole = role
	sim.Materials = text
	sim.Turns = []domain.ChatTurn{{Role: domain.RoleAssistant, Text: reply, CreatedAt: now}}
	sim.State = domain.SimActive
	sim.UpdatedAt = now

	if err := s.repo.SaveSimulation(ctx, sim); err != nil {
		return nil, fmt.Errorf("save simulation: %w", err)
	}

	s.logger.Info(ctx, "[%s] Hearing opened, user represents %s", sim.ID, role)
	return sim, nil
}

func (s *implService) Turn(ctx context.Context, simID string, input TurnInput) (*domain.Simulation, error) {
	sim, release, err := s.load(ctx, simID, domain.SimActive, "answer in")
	if err != nil {
		return nil, err
	}
	defer release()

	answer, err := s.answerText(ctx, sim.ID, input)
	if err != nil {
		return nil, err
	}

	reply, err := s.generate(ctx, turnPrompt(sim.UserRole, sim.Turns, answer))
	if err != nil {
		return nil, fmt.Errorf("hearing reply: %w", err)
	}

	now := s.now()
	sim.Turns = append(sim.Turns,
		domain.ChatTurn{Role: domain.RoleUser, Text: answer, CreatedAt: now},
		domain.ChatTurn{Role: domain.RoleAssistant, Text: reply, CreatedAt: now},
	)
	sim.TurnCount++
	sim.UpdatedAt = now

	if err := s.repo.SaveSimulation(ctx, sim); err != nil {
		return nil, fmt.Errorf("save simulation: %w", err)
	}

	s.logger.Info(ctx, "[%s] Turn %d recorded", sim.ID, sim.TurnCount)
	return sim, nil
}

func (s *implService) End(ctx context.Context, simID string) (*domain.Simulation, error) {
	sim, release, err := s.load(ctx, simID, domain.SimActive, "end")
	if err != nil {
		return nil, err
	}
	defer release()

	debrief, err := s.generate(ctx, debriefPrompt(sim.UserRole, sim.Turns))
	if err != nil {
		return nil, fmt.Errorf("debrief: %w", err)
	}

	sim.Debrief = debrief
	sim.State = domain.SimDebriefed
	sim.UpdatedAt = s.now()

	if err := s.repo.SaveSimulation(ctx, sim); err != nil {
		return nil, fmt.Errorf("save simulation: %w", err)
	}

	s.logger.Info(ctx, "[%s] Hearing closed after %d turns", sim.ID, sim.TurnCount)
	return sim, nil
}

func (s *implService) Restart(ctx context.Context, simID string) (*domain.Simulation, error) {
	sim, release, err := s.load(ctx, simID, domain.SimDebriefed, "restart")
	if err != nil {
		return nil, err
	}
	defer release()

	sim.State = domain.SimConfiguring
	sim.UserRole = ""
	sim.Materials = ""
	sim.Turns = nil
	sim.TurnCount = 0
	sim.Debrief = ""
	sim.UpdatedAt = s.now()

	if err := s.repo.SaveSimulation(ctx, sim); err != nil {
		return nil, fmt.Errorf("save simulation: %w", err)
	}
	return sim, nil
}

func (s *implService) Export(ctx context.Context, simID string, w io.Writer) (string, error) {
	sim, err := s.Get(ctx, simID)
	if err != nil {
		return "", err
	}
	if sim.State != domain.SimDebriefed {
		return "", &TransitionError{From: sim.State, Action: "export"}
	}

	if err := s.exporter.Export(ExportTitle, sim.Debrief, w); err != nil {
		return "", fmt.Errorf("export debrief: %w", err)
	}
	return ExportFilename, nil
}

// load claims the simulation and checks that it is in state want.
func (s *implService) load(ctx context.Context, simID string, want domain.SimState, action string) (*domain.Simulation, func(), error) {
	if err := validID(simID); err != nil {
		return nil, nil, err
	}
	release, ok := s.inflight.TryAcquire(simID)
	if !ok {
		return nil, nil, ErrBusy
	}

	sim, err := s.repo.GetSimulation(ctx, simID)
	if err != nil {
		release()
		return nil, nil, err
	}
	if sim.State != want {
		release()
		return nil, nil, &TransitionError{From: sim.State, Action: action}
	}
	return sim, release, nil
}

func (s *implService) generate(ctx context.Context, prompt string) (string, error) {
	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", gemini.ErrEmptyResponse
	}
	return text, nil
}

func validID(simID string) error {
	if _, err := uuid.Parse(simID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, simID)
	}
	return nil
}
