package pitch

import (
	"pitchdeck-scraper/internal/domain"
	"pitchdeck-scraper/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

type Selectors struct {
	Name     string
	Hashtags string
}

func DefaultSelectors() Selectors {
	return Selectors{Name: ".pitch_name > a", Hashtags: "li > a"}
}

type Assembler struct {
	sel Selectors
}

func New(sel Selectors) *Assembler {
	return &Assembler{sel: sel}
}

func (a *Assembler) Name() string { return "pitches" }

// Assemble requires a pitch name; hashtags may be absent.
func (a *Assembler) Assemble(doc *goquery.Document) (domain.PitchRecord, error) {
	name, err := util.Text(doc.Selection, a.sel.Name)
	if err != nil {
		return domain.PitchRecord{}, err
	}
	return domain.PitchRecord{
		Name:     name,
		Hashtags: util.AllText(doc.Selection, a.sel.Hashtags),
	}, nil
}
