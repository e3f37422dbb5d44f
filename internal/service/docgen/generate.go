package docgen

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asmelnikov/docgen-backend/internal/busdate"
	"github.com/asmelnikov/docgen-backend/internal/docx"
	"github.com/asmelnikov/docgen-backend/internal/domain"
	"github.com/asmelnikov/docgen-backend/internal/moneywords"
)

// GenerateInput is one document-generation request.
type GenerateInput struct {
	TemplateID uuid.UUID
	Submission domain.Submission
}

// GenerateResult reports a committed generation.
type GenerateResult struct {
	DocumentID uuid.UUID
	Number     int
	SavePath   string
	ShownDate  time.Time
	Total      *float64
	Warnings   []string
}

// Generate runs the full assembly pipeline: validate the submission, derive
// the data dictionary, render the template, expand its table, persist the
// Document with its values, and save the output file.
//
// Validation failures abort before any state is created. After the Document
// row is committed, a failed file save deletes the row again; a generation
// either fully commits or leaves nothing behind.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	if err := s.schema.Validate(ctx, input.Submission, domain.EntityKindDocumentField); err != nil {
		return nil, err
	}
	missing, err := s.schema.MissingRequired(ctx, input.Submission, domain.EntityKindDocumentField)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		fieldErrs := make([]domain.FieldError, len(missing))
		for i, name := range missing {
			fieldErrs[i] = domain.FieldError{Field: name, Message: "required"}
		}
		return nil, domain.NewValidationErrors(fieldErrs)
	}

	tmpl, err := s.templates.GetByID(ctx, input.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	parties, err := s.loadParties(ctx, tmpl)
	if err != nil {
		return nil, err
	}

	scope := domain.NumberingScope{
		ExecutorPersonID:   tmpl.ExecutorPersonID,
		ContractorPersonID: tmpl.ContractorPersonID,
		Type:               tmpl.Type,
	}
	number, err := s.documents.NextNumber(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("next document number: %w", err)
	}

	now := s.now()
	shownDate := busdate.FirstBusinessDay(now.Year(), now.Month(), now.Location())

	data := input.Submission.Scalars()
	data[docx.OrderDateField] = busdate.FormatLong(shownDate)
	data["order_number"] = strconv.Itoa(number)
	parties.fill(data)

	cols, err := s.templates.ListTableColumns(ctx, tmpl.ID)
	if err != nil {
		return nil, fmt.Errorf("list table columns: %w", err)
	}
	domain.SortColumns(cols)
	sumIdx, err := domain.SummableIndex(cols)
	if err != nil {
		return nil, err
	}
	rows := buildRows(cols, input.Submission.TableRows())

	var total *float64
	if sumIdx >= 0 {
		t, err := docx.SumColumn(rows, sumIdx)
		if err != nil {
			return nil, err
		}
		total = &t
		data["total_cost"] = strconv.FormatFloat(t, 'f', 2, 64)
		words, rubles, kopecks := moneywords.Amount(t)
		data["total_cost_words"] = fmt.Sprintf("%s %s %s", words, rubles, kopecks)
	}

	pkg, err := docx.Open(filepath.Join(s.storage.TemplatesDir, filepath.Base(tmpl.FilePath)))
	if err != nil {
		return nil, err
	}
	warnings, err := pkg.Render(data)
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		if err := pkg.ExpandTable(rows); err != nil {
			return nil, err
		}
	}

	doc := &domain.Document{
		ID:         uuid.New(),
		TemplateID: tmpl.ID,
		Number:     number,
		ShownDate:  shownDate,
		SavePath:   s.savePath(tmpl, shownDate),
		CreatedAt:  now,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.documents.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.documents.CreateValues(ctx, documentValues(doc.ID, input.Submission)); err != nil {
			return fmt.Errorf("create document values: %w", err)
		}
		if err := s.documents.CreateTableValues(ctx, tableValues(doc.ID, cols, rows)); err != nil {
			return fmt.Errorf("create table values: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := pkg.Save(doc.SavePath); err != nil {
		// The record is already committed; take it back so a failed save
		// leaves neither a row nor a file.
		if delErr := s.documents.Delete(ctx, doc.ID); delErr != nil {
			s.log.Error("rollback after failed save", "document_id", doc.ID, "error", delErr)
		}
		return nil, fmt.Errorf("save document: %w", err)
	}

	s.log.Info("document generated",
		"document_id", doc.ID,
		"template_id", tmpl.ID,
		"number", number,
		"warnings", len(warnings),
	)

	return &GenerateResult{
		DocumentID: doc.ID,
		Number:     number,
		SavePath:   doc.SavePath,
		ShownDate:  shownDate,
		Total:      total,
		Warnings:   warnings,
	}, nil
}

// parties bundles the signatories and companies a template points at.
type parties struct {
	executorPerson   *domain.ExecutorPerson
	contractorPerson *domain.ContractorPerson
	executor         *domain.Executor
	contractor       *domain.Contractor
}

func (s *Service) loadParties(ctx context.Context, tmpl *domain.Template) (*parties, error) {
	ep, err := s.persons.GetExecutorPerson(ctx, tmpl.ExecutorPersonID)
	if err != nil {
		return nil, fmt.Errorf("get executor person: %w", err)
	}
	cp, err := s.persons.GetContractorPerson(ctx, tmpl.ContractorPersonID)
	if err != nil {
		return nil, fmt.Errorf("get contractor person: %w", err)
	}
	ex, err := s.persons.GetExecutor(ctx, ep.ExecutorID)
	if err != nil {
		return nil, fmt.Errorf("get executor company: %w", err)
	}
	co, err := s.persons.GetContractor(ctx, cp.ContractorID)
	if err != nil {
		return nil, fmt.Errorf("get contractor company: %w", err)
	}
	return &parties{executorPerson: ep, contractorPerson: cp, executor: ex, contractor: co}, nil
}

// fill injects the read-only derivations: contract identity and the two
// signatory blocks.
func (p *parties) fill(data map[string]string) {
	data["contract_number"] = strconv.Itoa(p.contractor.ContractNumber)
	data["contract_date"] = busdate.FormatLong(p.contractor.ContractDate)

	data["contractor_person"] = p.contractorPerson.Initials()
	data["contractor_post"] = p.contractorPerson.Post
	data["contractor_company"] = p.contractor.Name
	data["contractor_company_full"] = p.contractor.FullName

	data["executor_person"] = p.executorPerson.Initials()
	data["executor_post"] = p.executorPerson.Post
	data["executor_company"] = p.executor.Name
	data["executor_company_full"] = p.executor.FullName
}

// savePath derives the deterministic output location:
// {documents_dir}/{template_file_basename}_{MM-YY}.docx.
func (s *Service) savePath(tmpl *domain.Template, shownDate time.Time) string {
	base := strings.TrimSuffix(filepath.Base(tmpl.FilePath), ".docx")
	name := fmt.Sprintf("%s_%s.docx", base, shownDate.Format("01-06"))
	return filepath.Join(s.storage.DocumentsDir, name)
}

func documentValues(docID uuid.UUID, sub domain.Submission) []domain.DocumentValue {
	var out []domain.DocumentValue
	for _, item := range sub {
		if sc, ok := item.Value.(domain.Scalar); ok {
			out = append(out, domain.DocumentValue{
				DocumentID: docID,
				FieldID:    item.FieldID,
				Value:      string(sc),
			})
		}
	}
	return out
}

func tableValues(docID uuid.UUID, cols []domain.TableColumn, rows [][]string) []domain.TableValue {
	var out []domain.TableValue
	for rowNum, row := range rows {
		for colIdx, col := range cols {
			value := ""
			if colIdx < len(row) {
				value = row[colIdx]
			}
			out = append(out, domain.TableValue{
				DocumentID: docID,
				ColumnID:   col.ID,
				RowNumber:  rowNum,
				Value:      value,
			})
		}
	}
	return out
}
