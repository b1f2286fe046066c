package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"hrms/models"
)

// MemoryStore keeps everything behind one mutex. It backs handler and
// service tests; it intentionally favors clarity over performance.
type MemoryStore struct {
	mu sync.RWMutex

	organisations map[uint]models.Organisation
	users         map[uint]models.User
	employees     map[uint]models.Employee
	teams         map[uint]models.Team
	assignments   map[uint]models.EmployeeTeam
	logs          []models.Log

	nextOrgID        uint
	nextUserID       uint
	nextEmployeeID   uint
	nextTeamID       uint
	nextAssignmentID uint
	nextLogID        uint
}

var _ Store = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{
		organisations: make(map[uint]models.Organisation),
		users:         make(map[uint]models.User),
		employees:     make(map[uint]models.Employee),
		teams:         make(map[uint]models.Team),
		assignments:   make(map[uint]models.EmployeeTeam),
	}
}

func (s *MemoryStore) Register(_ context.Context, org *models.Organisation, user *models.User, entry *models.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}

	now := time.Now()

	s.nextOrgID++
	org.ID = s.nextOrgID
	org.CreatedAt = now
	s.organisations[org.ID] = *org

	s.nextUserID++
	user.ID = s.nextUserID
	user.OrganisationID = org.ID
	user.CreatedAt = now
	s.users[user.ID] = *user

	s.nextLogID++
	entry.ID = s.nextLogID
	entry.OrganisationID = org.ID
	entry.UserID = user.ID
	entry.Timestamp = now
	s.logs = append(s.logs, *entry)

	return nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return s.withOrganisation(user), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.withOrganisation(user), nil
}

func (s *MemoryStore) withOrganisation(user models.User) *models.User {
	user.Organisation = s.organisations[user.OrganisationID]
	return &user
}

func (s *MemoryStore) CreateEmployee(_ context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEmployeeID++
	employee.ID = s.nextEmployeeID
	now := time.Now()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	s.employees[employee.ID] = *employee
	return nil
}

func (s *MemoryStore) ListEmployees(_ context.Context, orgID uint) ([]EmployeeWithTeams, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []EmployeeWithTeams{}
	for _, e := range s.employees {
		if e.OrganisationID != orgID {
			continue
		}
		item := EmployeeWithTeams{Employee: e, Teams: []models.Team{}}
		for _, a := range s.sortedAssignments() {
			if a.EmployeeID == e.ID {
				item.Teams = append(item.Teams, s.teams[a.TeamID])
			}
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *MemoryStore) EmployeeByID(_ context.Context, orgID, id uint) (*EmployeeDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, ok := s.employees[id]
	if !ok || employee.OrganisationID != orgID {
		return nil, ErrNotFound
	}

	detail := &EmployeeDetail{Employee: employee, Teams: []TeamAssignment{}}
	for _, a := range s.sortedAssignments() {
		if a.EmployeeID == id {
			detail.Teams = append(detail.Teams, TeamAssignment{
				Team:       s.teams[a.TeamID],
				AssignedAt: a.AssignedAt,
			})
		}
	}
	return detail, nil
}

func (s *MemoryStore) UpdateEmployee(_ context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employee.ID]; !ok {
		return ErrNotFound
	}
	employee.UpdatedAt = time.Now()
	s.employees[employee.ID] = *employee
	return nil
}

func (s *MemoryStore) DeleteEmployee(_ context.Context, orgID, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee, ok := s.employees[id]
	if !ok || employee.OrganisationID != orgID {
		return ErrNotFound
	}
	for aid, a := range s.assignments {
		if a.EmployeeID == id {
			delete(s.assignments, aid)
		}
	}
	delete(s.employees, id)
	return nil
}

func (s *MemoryStore) CreateTeam(_ context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTeamID++
	team.ID = s.nextTeamID
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now
	s.teams[team.ID] = *team
	return nil
}

func (s *MemoryStore) ListTeams(_ context.Context, orgID uint) ([]TeamWithEmployees, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []TeamWithEmployees{}
	for _, t := range s.teams {
		if t.OrganisationID != orgID {
			continue
		}
		item := TeamWithEmployees{Team: t, Employees: []models.Employee{}}
		for _, a := range s.sortedAssignments() {
			if a.TeamID == t.ID {
				item.Employees = append(item.Employees, s.employees[a.EmployeeID])
			}
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *MemoryStore) TeamByID(_ context.Context, orgID, id uint) (*TeamDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teams[id]
	if !ok || team.OrganisationID != orgID {
		return nil, ErrNotFound
	}

	detail := &TeamDetail{Team: team, Employees: []EmployeeAssignment{}}
	for _, a := range s.sortedAssignments() {
		if a.TeamID == id {
			detail.Employees = append(detail.Employees, EmployeeAssignment{
				Employee:   s.employees[a.EmployeeID],
				AssignedAt: a.AssignedAt,
			})
		}
	}
	return detail, nil
}

func (s *MemoryStore) UpdateTeam(_ context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[team.ID]; !ok {
		return ErrNotFound
	}
	team.UpdatedAt = time.Now()
	s.teams[team.ID] = *team
	return nil
}

func (s *MemoryStore) DeleteTeam(_ context.Context, orgID, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[id]
	if !ok || team.OrganisationID != orgID {
		return ErrNotFound
	}
	for aid, a := range s.assignments {
		if a.TeamID == id {
			delete(s.assignments, aid)
		}
	}
	delete(s.teams, id)
	return nil
}

func (s *MemoryStore) Assign(_ context.Context, employeeID, teamID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.assignments {
		if a.EmployeeID == employeeID && a.TeamID == teamID {
			return ErrAlreadyAssigned
		}
	}
	s.nextAssignmentID++
	s.assignments[s.nextAssignmentID] = models.EmployeeTeam{
		ID:         s.nextAssignmentID,
		EmployeeID: employeeID,
		TeamID:     teamID,
		AssignedAt: time.Now(),
	}
	return nil
}

func (s *MemoryStore) Unassign(_ context.Context, employeeID, teamID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for aid, a := range s.assignments {
		if a.EmployeeID == employeeID && a.TeamID == teamID {
			delete(s.assignments, aid)
			return nil
		}
	}
	return ErrNotAssigned
}

func (s *MemoryStore) AppendLog(_ context.Context, entry *models.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextLogID++
	entry.ID = s.nextLogID
	entry.Timestamp = time.Now()
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *MemoryStore) ListLogs(_ context.Context, orgID uint, filter LogFilter) ([]models.Log, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Log{}
	for _, l := range s.logs {
		if l.OrganisationID != orgID {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		matched = append(matched, l)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []models.Log{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (s *MemoryStore) sortedAssignments() []models.EmployeeTeam {
	out := make([]models.EmployeeTeam, 0, len(s.assignments))
	for _, a := range s.assignments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
