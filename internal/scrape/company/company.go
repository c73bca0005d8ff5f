package company

import (
	"pitchdeck-scraper/internal/domain"
	"pitchdeck-scraper/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

type Selectors struct {
	Name        string // text
	Description string // text
	Logo        string // element carrying src
}

func DefaultSelectors() Selectors {
	return Selectors{
		Name:        ".company_name",
		Description: ".investor_notes",
		Logo:        ".company_logo > img",
	}
}

type Assembler struct {
	sel Selectors
}

func New(sel Selectors) *Assembler {
	return &Assembler{sel: sel}
}

func (a *Assembler) Name() string { return "companies" }

// Assemble reads the name, investor notes and logo src from a company detail
// page. All three are required.
func (a *Assembler) Assemble(doc *goquery.Document) (domain.CompanyRecord, error) {
	name, err := util.Text(doc.Selection, a.sel.Name)
	if err != nil {
		return domain.CompanyRecord{}, err
	}
	desc, err := util.Text(doc.Selection, a.sel.Description)
	if err != nil {
		return domain.CompanyRecord{}, err
	}
	logo, err := util.Attr(doc.Selection, a.sel.Logo, "src")
	if err != nil {
		return domain.CompanyRecord{}, err
	}
	return domain.CompanyRecord{Name: name, Description: desc, LogoURL: logo}, nil
}
