package knowledge

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/domain/repository"
)

// Workbook sheet names. Lookup ignores case.
const (
	SheetProfile  = "profile"
	SheetSkills   = "skills"
	SheetProjects = "projects"
)

type excelLoader struct{}

// NewExcelLoader profile loader for .xlsx workbooks.
//
// Expected layout:
//   - profile: two columns, field name and value (name, nickname, title, college, ...)
//   - skills: category in column A, items in the remaining cells (comma separated cells are split)
//   - projects: header row (name, description, technologies, repository) followed by one row per project
func NewExcelLoader() repository.KnowledgeLoader {
	return &excelLoader{}
}

func (e *excelLoader) LoadProfile(ctx context.Context, filePath string) (entity.Profile, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return entity.Profile{}, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseWorkbook(f)
}

func (e *excelLoader) LoadProfileFromBytes(ctx context.Context, data []byte, filename string) (entity.Profile, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return entity.Profile{}, fmt.Errorf("failed to open excel from bytes (%s): %w", filename, err)
	}
	defer f.Close()

	return e.parseWorkbook(f)
}

func (e *excelLoader) parseWorkbook(f *excelize.File) (entity.Profile, error) {
	sheets := make(map[string]string)
	for _, name := range f.GetSheetList() {
		sheets[strings.ToLower(strings.TrimSpace(name))] = name
	}

	profileSheet, ok := sheets[SheetProfile]
	if !ok {
		return entity.Profile{}, fmt.Errorf("excel file has no %q sheet", SheetProfile)
	}

	var profile entity.Profile

	rows, err := f.GetRows(profileSheet)
	if err != nil {
		return entity.Profile{}, fmt.Errorf("failed to get rows of %s: %w", profileSheet, err)
	}
	e.parseProfileRows(rows, &profile)

	if name, ok := sheets[SheetSkills]; ok {
		rows, err := f.GetRows(name)
		if err != nil {
			return entity.Profile{}, fmt.Errorf("failed to get rows of %s: %w", name, err)
		}
		profile.Skills = e.parseSkillRows(rows)
	}

	if name, ok := sheets[SheetProjects]; ok {
		rows, err := f.GetRows(name)
		if err != nil {
			return entity.Profile{}, fmt.Errorf("failed to get rows of %s: %w", name, err)
		}
		profile.Projects = e.parseProjectRows(rows)
	}

	return profile, nil
}

func (e *excelLoader) parseProfileRows(rows [][]string, p *entity.Profile) {
	for _, row := range rows {
		if len(row) < 2 || isEmptyRow(row) {
			continue
		}
		key := normalizeKey(row[0])
		value := strings.TrimSpace(row[1])

		switch key {
		case "name", "fullname":
			p.Name = value
		case "nickname", "firstname", "shortname":
			p.Nickname = value
		case "title", "headline":
			p.Title = value
		case "college", "university":
			p.College = value
		case "collegeshort", "collegeabbr":
			p.CollegeShort = value
		case "degree", "branch":
			p.Degree = value
		case "greeting", "welcome":
			p.Greeting = value
		case "email", "mail":
			p.Contact.Email = value
		case "github":
			p.Contact.GitHub = value
		case "linkedin":
			p.Contact.LinkedIn = value
		}
	}
}

func (e *excelLoader) parseSkillRows(rows [][]string) []entity.SkillGroup {
	var groups []entity.SkillGroup
	for i, row := range rows {
		if len(row) == 0 || isEmptyRow(row) {
			continue
		}
		category := strings.ToLower(strings.TrimSpace(row[0]))
		if i == 0 && category == "category" {
			continue
		}
		if category == "" {
			continue
		}
		groups = append(groups, entity.SkillGroup{
			Category: category,
			Items:    splitCells(row[1:]),
		})
	}
	return groups
}

func (e *excelLoader) parseProjectRows(rows [][]string) []entity.Project {
	if len(rows) == 0 {
		return nil
	}

	columns := e.mapColumns(rows[0])
	cell := func(row []string, field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var projects []entity.Project
	for _, row := range rows[1:] {
		if len(row) == 0 || isEmptyRow(row) {
			continue
		}
		name := cell(row, "name")
		if name == "" {
			continue
		}
		projects = append(projects, entity.Project{
			Name:          name,
			Description:   cell(row, "description"),
			Technologies:  splitCells([]string{cell(row, "technologies")}),
			RepositoryURL: cell(row, "repository"),
		})
	}
	return projects
}

// mapColumns column index per field, guessed from the header row.
// Link columns are checked first so "Project URL" is not taken for the name.
func (e *excelLoader) mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)

	for i, col := range header {
		colName := strings.ToLower(strings.TrimSpace(col))

		switch {
		case contains(colName, "repo", "github", "link", "url"):
			columnMap["repository"] = i
		case contains(colName, "description", "summary", "about", "details"):
			columnMap["description"] = i
		case contains(colName, "tech", "stack", "tools"):
			columnMap["technologies"] = i
		case contains(colName, "name", "title", "project"):
			columnMap["name"] = i
		}
	}

	if _, ok := columnMap["name"]; !ok && len(header) > 0 {
		columnMap["name"] = 0
	}

	return columnMap
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func contains(str string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(str, kw) {
			return true
		}
	}
	return false
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

func splitCells(cells []string) []string {
	var items []string
	for _, c := range cells {
		for _, part := range strings.Split(c, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
	}
	return items
}
