package store

import (
	"context"
	"errors"

	"hrms/models"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormStore is the postgres-backed implementation.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (s *GormStore) Register(ctx context.Context, org *models.Organisation, user *models.User, entry *models.Log) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		user.OrganisationID = org.ID
		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrEmailTaken
			}
			return err
		}

		entry.OrganisationID = org.ID
		entry.UserID = user.ID
		return tx.Create(entry).Error
	})
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Organisation").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Organisation").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	return s.db.WithContext(ctx).Create(employee).Error
}

func (s *GormStore) ListEmployees(ctx context.Context, orgID uint) ([]EmployeeWithTeams, error) {
	var employees []models.Employee
	err := s.db.WithContext(ctx).
		Where("organisation_id = ?", orgID).
		Order("created_at DESC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}

	result := make([]EmployeeWithTeams, len(employees))
	ids := make([]uint, len(employees))
	for i, e := range employees {
		result[i] = EmployeeWithTeams{Employee: e, Teams: []models.Team{}}
		ids[i] = e.ID
	}
	if len(ids) == 0 {
		return result, nil
	}

	joins, teams, err := s.teamsForEmployees(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		for _, j := range joins {
			if j.EmployeeID != result[i].ID {
				continue
			}
			if team, ok := teams[j.TeamID]; ok {
				result[i].Teams = append(result[i].Teams, team)
			}
		}
	}
	return result, nil
}

func (s *GormStore) EmployeeByID(ctx context.Context, orgID, id uint) (*EmployeeDetail, error) {
	var employee models.Employee
	err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", id, orgID).
		First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	joins, teams, err := s.teamsForEmployees(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	detail := &EmployeeDetail{Employee: employee, Teams: []TeamAssignment{}}
	for _, j := range joins {
		if team, ok := teams[j.TeamID]; ok {
			detail.Teams = append(detail.Teams, TeamAssignment{Team: team, AssignedAt: j.AssignedAt})
		}
	}
	return detail, nil
}

func (s *GormStore) teamsForEmployees(ctx context.Context, employeeIDs []uint) ([]models.EmployeeTeam, map[uint]models.Team, error) {
	var joins []models.EmployeeTeam
	err := s.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Order("assigned_at ASC").
		Find(&joins).Error
	if err != nil {
		return nil, nil, err
	}
	if len(joins) == 0 {
		return nil, nil, nil
	}

	teamIDs := make([]uint, 0, len(joins))
	for _, j := range joins {
		teamIDs = append(teamIDs, j.TeamID)
	}
	var teams []models.Team
	if err := s.db.WithContext(ctx).Where("id IN ?", teamIDs).Find(&teams).Error; err != nil {
		return nil, nil, err
	}
	byID := make(map[uint]models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	return joins, byID, nil
}

func (s *GormStore) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	return s.db.WithContext(ctx).Save(employee).Error
}

func (s *GormStore) DeleteEmployee(ctx context.Context, orgID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		err := tx.Where("id = ? AND organisation_id = ?", id, orgID).First(&employee).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Where("employee_id = ?", id).Delete(&models.EmployeeTeam{}).Error; err != nil {
			return err
		}
		return tx.Delete(&employee).Error
	})
}

func (s *GormStore) CreateTeam(ctx context.Context, team *models.Team) error {
	return s.db.WithContext(ctx).Create(team).Error
}

func (s *GormStore) ListTeams(ctx context.Context, orgID uint) ([]TeamWithEmployees, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Where("organisation_id = ?", orgID).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}

	result := make([]TeamWithEmployees, len(teams))
	ids := make([]uint, len(teams))
	for i, t := range teams {
		result[i] = TeamWithEmployees{Team: t, Employees: []models.Employee{}}
		ids[i] = t.ID
	}
	if len(ids) == 0 {
		return result, nil
	}

	joins, employees, err := s.employeesForTeams(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		for _, j := range joins {
			if j.TeamID != result[i].ID {
				continue
			}
			if employee, ok := employees[j.EmployeeID]; ok {
				result[i].Employees = append(result[i].Employees, employee)
			}
		}
	}
	return result, nil
}

func (s *GormStore) TeamByID(ctx context.Context, orgID, id uint) (*TeamDetail, error) {
	var team models.Team
	err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", id, orgID).
		First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	joins, employees, err := s.employeesForTeams(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	detail := &TeamDetail{Team: team, Employees: []EmployeeAssignment{}}
	for _, j := range joins {
		if employee, ok := employees[j.EmployeeID]; ok {
			detail.Employees = append(detail.Employees, EmployeeAssignment{Employee: employee, AssignedAt: j.AssignedAt})
		}
	}
	return detail, nil
}

func (s *GormStore) employeesForTeams(ctx context.Context, teamIDs []uint) ([]models.EmployeeTeam, map[uint]models.Employee, error) {
	var joins []models.EmployeeTeam
	err := s.db.WithContext(ctx).
		Where("team_id IN ?", teamIDs).
		Order("assigned_at ASC").
		Find(&joins).Error
	if err != nil {
		return nil, nil, err
	}
	if len(joins) == 0 {
		return nil, nil, nil
	}

	employeeIDs := make([]uint, 0, len(joins))
	for _, j := range joins {
		employeeIDs = append(employeeIDs, j.EmployeeID)
	}
	var employees []models.Employee
	if err := s.db.WithContext(ctx).Where("id IN ?", employeeIDs).Find(&employees).Error; err != nil {
		return nil, nil, err
	}
	byID := make(map[uint]models.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}
	return joins, byID, nil
}

func (s *GormStore) UpdateTeam(ctx context.Context, team *models.Team) error {
	return s.db.WithContext(ctx).Save(team).Error
}

func (s *GormStore) DeleteTeam(ctx context.Context, orgID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team
		err := tx.Where("id = ? AND organisation_id = ?", id, orgID).First(&team).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		// Join rows must not outlive the team.
		if err := tx.Where("team_id = ?", id).Delete(&models.EmployeeTeam{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
}

func (s *GormStore) Assign(ctx context.Context, employeeID, teamID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.EmployeeTeam{}).
		Where("employee_id = ? AND team_id = ?", employeeID, teamID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyAssigned
	}

	err = s.db.WithContext(ctx).Create(&models.EmployeeTeam{EmployeeID: employeeID, TeamID: teamID}).Error
	// The unique index closes the window between the check and the insert;
	// a lost race reads the same as a duplicate assignment.
	if isUniqueViolation(err) {
		return ErrAlreadyAssigned
	}
	return err
}

func (s *GormStore) Unassign(ctx context.Context, employeeID, teamID uint) error {
	res := s.db.WithContext(ctx).
		Where("employee_id = ? AND team_id = ?", employeeID, teamID).
		Delete(&models.EmployeeTeam{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotAssigned
	}
	return nil
}

func (s *GormStore) AppendLog(ctx context.Context, entry *models.Log) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *GormStore) ListLogs(ctx context.Context, orgID uint, filter LogFilter) ([]models.Log, int64, error) {
	scoped := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Log{}).Where("organisation_id = ?", orgID)
		if filter.Action != "" {
			q = q.Where("action = ?", filter.Action)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.Log
	err := scoped().
		Order("timestamp DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
