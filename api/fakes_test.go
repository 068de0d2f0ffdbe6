package api

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/rpupo63/devtracker-backend/models"
	"github.com/rpupo63/devtracker-backend/payload"
)

// memState is an in-memory stand-in for the five tables. writes counts
// every successful mutation so tests can assert that nothing was written.
type memState struct {
	mu sync.Mutex

	developers   map[int64]*models.Developer
	infos        map[int64]*models.DeveloperInfo
	projects     map[int64]*models.Project
	technologies []models.Technology
	links        []models.ProjectTechnology

	nextID  int64
	writes  int
	failAll error
	pingErr error
}

func newMemState() *memState {
	s := &memState{
		developers: map[int64]*models.Developer{},
		infos:      map[int64]*models.DeveloperInfo{},
		projects:   map[int64]*models.Project{},
	}
	for i, name := range []string{"JavaScript", "Python", "React", "PostgreSQL"} {
		s.technologies = append(s.technologies, models.Technology{ID: int64(i + 1), Name: name})
	}
	return s
}

func (s *memState) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memState) stores() stores {
	return stores{
		developers:      fakeDevelopers{s},
		developerInfos:  fakeInfos{s},
		projects:        fakeProjects{s},
		technologies:    fakeTechnologies{s},
		developerLookup: fakeDevelopers{s},
		projectLookup:   fakeProjects{s},
		health:          s,
	}
}

func (s *memState) Ping(ctx context.Context) error {
	return s.pingErr
}

func uniqueViolation(detail string) error {
	return &pgconn.PgError{Code: "23505", Detail: detail}
}

// missingDeveloper mirrors the projects."developerId" foreign key.
func (s *memState) missingDeveloper(fields payload.Fields) error {
	value, ok := fields.Get("developerId")
	if !ok {
		return nil
	}
	id := value.(int64)
	if _, ok := s.developers[id]; ok {
		return nil
	}
	return &pgconn.PgError{
		Code:   "23503",
		Detail: fmt.Sprintf(`Key (developerId)=(%d) is not present in table "developers".`, id),
	}
}

func str(fields payload.Fields, name string) (string, bool) {
	value, ok := fields.Get(name)
	if !ok {
		return "", false
	}
	s, _ := value.(string)
	return s, true
}

func (s *memState) detail(d *models.Developer) models.DeveloperDetail {
	out := models.DeveloperDetail{
		DeveloperID:     d.ID,
		DeveloperName:   d.Name,
		DeveloperEmail:  d.Email,
		DeveloperInfoID: d.DeveloperInfoID,
	}
	if d.DeveloperInfoID != nil {
		info := s.infos[*d.DeveloperInfoID]
		since := info.DeveloperSince.String()
		os := info.PreferredOS
		out.DeveloperInfoDeveloperSince = &since
		out.DeveloperInfoPreferredOS = &os
	}
	return out
}

func (s *memState) sortedDevelopers() []*models.Developer {
	out := make([]*models.Developer, 0, len(s.developers))
	for _, d := range s.developers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeDevelopers struct{ s *memState }

func (f fakeDevelopers) FindAll(ctx context.Context) ([]models.DeveloperDetail, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failAll != nil {
		return nil, f.s.failAll
	}

	out := []models.DeveloperDetail{}
	for _, d := range f.s.sortedDevelopers() {
		out = append(out, f.s.detail(d))
	}
	return out, nil
}

func (f fakeDevelopers) FindByID(ctx context.Context, id int64) (*models.DeveloperDetail, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	d, ok := f.s.developers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	detail := f.s.detail(d)
	return &detail, nil
}

func (f fakeDevelopers) FindProjects(ctx context.Context, id int64) ([]models.DeveloperProject, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	rows := []models.DeveloperProject{}
	d, ok := f.s.developers[id]
	if !ok {
		return rows, nil
	}

	var projectIDs []int64
	for pid, p := range f.s.projects {
		if p.DeveloperID == id {
			projectIDs = append(projectIDs, pid)
		}
	}
	sort.Slice(projectIDs, func(i, j int) bool { return projectIDs[i] < projectIDs[j] })

	for _, pid := range projectIDs {
		p := f.s.projects[pid]
		base := models.DeveloperProject{
			DeveloperDetail:      f.s.detail(d),
			ProjectID:            &p.ID,
			ProjectName:          &p.Name,
			ProjectDescription:   &p.Description,
			ProjectEstimatedTime: &p.EstimatedTime,
			ProjectRepository:    &p.Repository,
		}
		start := p.StartDate.String()
		base.ProjectStartDate = &start
		if p.EndDate != nil {
			end := p.EndDate.String()
			base.ProjectEndDate = &end
		}

		linked := false
		for _, tech := range f.s.technologies {
			for _, link := range f.s.links {
				if link.ProjectID == pid && link.TechnologyID == tech.ID {
					row := base
					techID, techName := tech.ID, tech.Name
					row.TechnologyID = &techID
					row.TechnologyName = &techName
					rows = append(rows, row)
					linked = true
				}
			}
		}
		if !linked {
			rows = append(rows, base)
		}
	}
	return rows, nil
}

func (f fakeDevelopers) emailUsed(email string, except int64) bool {
	for _, d := range f.s.developers {
		if d.Email == email && d.ID != except {
			return true
		}
	}
	return false
}

func (f fakeDevelopers) Create(ctx context.Context, fields payload.Fields) (*models.Developer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	name, _ := str(fields, "name")
	email, _ := str(fields, "email")
	if f.emailUsed(email, 0) {
		return nil, uniqueViolation(fmt.Sprintf("Key (email)=(%s) already exists.", email))
	}

	d := &models.Developer{ID: f.s.id(), Name: name, Email: email}
	f.s.developers[d.ID] = d
	f.s.writes++
	out := *d
	return &out, nil
}

func (f fakeDevelopers) Update(ctx context.Context, id int64, fields payload.Fields) (*models.Developer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	d, ok := f.s.developers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if email, ok := str(fields, "email"); ok {
		if f.emailUsed(email, id) {
			return nil, uniqueViolation(fmt.Sprintf("Key (email)=(%s) already exists.", email))
		}
		d.Email = email
	}
	if name, ok := str(fields, "name"); ok {
		d.Name = name
	}
	f.s.writes++
	out := *d
	return &out, nil
}

func (f fakeDevelopers) Delete(ctx context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	d, ok := f.s.developers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if d.DeveloperInfoID != nil {
		delete(f.s.infos, *d.DeveloperInfoID)
	}
	for pid, p := range f.s.projects {
		if p.DeveloperID == id {
			delete(f.s.projects, pid)
		}
	}
	delete(f.s.developers, id)
	f.s.writes++
	return nil
}

func (f fakeDevelopers) Exists(ctx context.Context, id int64) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	_, ok := f.s.developers[id]
	return ok, nil
}

func (f fakeDevelopers) EmailTaken(ctx context.Context, email string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.emailUsed(email, 0), nil
}

func (f fakeDevelopers) HasInfo(ctx context.Context, id int64) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.developers[id]
	return ok && d.DeveloperInfoID != nil, nil
}

// staleDevelopers answers every existence check with yes, as a guard would
// when the developer is deleted right after it looked.
type staleDevelopers struct{ fakeDevelopers }

func (staleDevelopers) Exists(ctx context.Context, id int64) (bool, error) {
	return true, nil
}

type fakeInfos struct{ s *memState }

func applyInfo(info *models.DeveloperInfo, fields payload.Fields) error {
	if since, ok := str(fields, "developerSince"); ok {
		date, err := models.ParseDate(since)
		if err != nil {
			return err
		}
		info.DeveloperSince = date
	}
	if os, ok := str(fields, "preferredOS"); ok {
		info.PreferredOS = models.PreferredOS(os)
	}
	return nil
}

func (f fakeInfos) Create(ctx context.Context, developerID int64, fields payload.Fields) (*models.DeveloperInfo, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	d, ok := f.s.developers[developerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	info := &models.DeveloperInfo{ID: f.s.id()}
	if err := applyInfo(info, fields); err != nil {
		return nil, err
	}
	f.s.infos[info.ID] = info
	d.DeveloperInfoID = &info.ID
	f.s.writes++
	out := *info
	return &out, nil
}

func (f fakeInfos) UpdateForDeveloper(ctx context.Context, developerID int64, fields payload.Fields) (*models.DeveloperInfo, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	d, ok := f.s.developers[developerID]
	if !ok || d.DeveloperInfoID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	info := f.s.infos[*d.DeveloperInfoID]
	if err := applyInfo(info, fields); err != nil {
		return nil, err
	}
	f.s.writes++
	out := *info
	return &out, nil
}

type fakeProjects struct{ s *memState }

func applyProject(p *models.Project, fields payload.Fields) error {
	for _, field := range fields {
		switch field.Name {
		case "name":
			p.Name = field.Value.(string)
		case "description":
			p.Description = field.Value.(string)
		case "estimatedTime":
			p.EstimatedTime = field.Value.(string)
		case "repository":
			p.Repository = field.Value.(string)
		case "developerId":
			p.DeveloperID = field.Value.(int64)
		case "startDate":
			date, err := models.ParseDate(field.Value.(string))
			if err != nil {
				return err
			}
			p.StartDate = date
		case "endDate":
			if field.Value == nil {
				p.EndDate = nil
				continue
			}
			date, err := models.ParseDate(field.Value.(string))
			if err != nil {
				return err
			}
			p.EndDate = &date
		}
	}
	return nil
}

func (f fakeProjects) FindAll(ctx context.Context) ([]models.Project, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	out := []models.Project{}
	for _, p := range f.s.projects {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeProjects) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	p, ok := f.s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	return &out, nil
}

func (f fakeProjects) Create(ctx context.Context, fields payload.Fields) (*models.Project, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if err := f.s.missingDeveloper(fields); err != nil {
		return nil, err
	}
	p := &models.Project{ID: f.s.id()}
	if err := applyProject(p, fields); err != nil {
		return nil, err
	}
	f.s.projects[p.ID] = p
	f.s.writes++
	out := *p
	return &out, nil
}

func (f fakeProjects) Update(ctx context.Context, id int64, fields payload.Fields) (*models.Project, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	p, ok := f.s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := f.s.missingDeveloper(fields); err != nil {
		return nil, err
	}
	if err := applyProject(p, fields); err != nil {
		return nil, err
	}
	f.s.writes++
	out := *p
	return &out, nil
}

func (f fakeProjects) Delete(ctx context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.projects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.s.projects, id)
	f.s.writes++
	return nil
}

func (f fakeProjects) Exists(ctx context.Context, id int64) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	_, ok := f.s.projects[id]
	return ok, nil
}

type fakeTechnologies struct{ s *memState }

func (f fakeTechnologies) FindAll(ctx context.Context) ([]models.Technology, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return append([]models.Technology{}, f.s.technologies...), nil
}

func (f fakeTechnologies) FindByName(ctx context.Context, name string) (*models.Technology, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, tech := range f.s.technologies {
		if tech.Name == name {
			out := tech
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeTechnologies) Link(ctx context.Context, projectID, technologyID int64) (*models.ProjectTechnology, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, link := range f.s.links {
		if link.ProjectID == projectID && link.TechnologyID == technologyID {
			return nil, uniqueViolation(fmt.Sprintf(`Key ("projectId", "technologyId")=(%d, %d) already exists.`, projectID, technologyID))
		}
	}

	link := models.ProjectTechnology{
		ID:           f.s.id(),
		AddedIn:      mustDate("2024-05-01"),
		ProjectID:    projectID,
		TechnologyID: technologyID,
	}
	f.s.links = append(f.s.links, link)
	f.s.writes++
	return &link, nil
}

func (f fakeTechnologies) Unlink(ctx context.Context, projectID, technologyID int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for i, link := range f.s.links {
		if link.ProjectID == projectID && link.TechnologyID == technologyID {
			f.s.links = append(f.s.links[:i], f.s.links[i+1:]...)
			f.s.writes++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func mustDate(s string) models.Date {
	date, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return date
}
