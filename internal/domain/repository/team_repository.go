package repository

import "github.com/campotec/campotec-api/internal/domain/entity"

// TeamRepository porta de persistência de equipes. Os dois List* são os dois
// caminhos de vínculo de liderança usados na resolução de escopo.
type TeamRepository interface {
	Create(team *entity.Team) error
	ListLedByTechnician(technicianID string) ([]*entity.Team, error)
	ListLedByEmployee(employeeID string) ([]*entity.Team, error)
}
