package pubmed

import (
	"encoding/xml"
	"strconv"
	"strings"
)

type eSearchResult struct {
	Count  int      `xml:"Count"`
	IDs    []string `xml:"IdList>Id"`
	Error  string   `xml:"ERROR"`
	Errors struct {
		PhraseNotFound []string `xml:"PhraseNotFound"`
		FieldNotFound  []string `xml:"FieldNotFound"`
	} `xml:"ErrorList"`
}

type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			Journal struct {
				Title           string `xml:"Title"`
				ISOAbbreviation string `xml:"ISOAbbreviation"`
				PubDate         struct {
					Year        string `xml:"Year"`
					MedlineDate string `xml:"MedlineDate"`
				} `xml:"JournalIssue>PubDate"`
			} `xml:"Journal"`
			Title    markupText `xml:"ArticleTitle"`
			Abstract struct {
				Sections []abstractSection `xml:"AbstractText"`
			} `xml:"Abstract"`
			Authors []author `xml:"AuthorList>Author"`
		} `xml:"Article"`
	} `xml:"MedlineCitation"`
}

type author struct {
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	Initials       string `xml:"Initials"`
	CollectiveName string `xml:"CollectiveName"`
}

// name renders "ForeName LastName", falling back to initials and then to
// a collective name.
func (a author) name() string {
	if c := strings.TrimSpace(a.CollectiveName); c != "" {
		return c
	}
	given := strings.TrimSpace(a.ForeName)
	if given == "" {
		given = strings.TrimSpace(a.Initials)
	}
	return strings.TrimSpace(given + " " + strings.TrimSpace(a.LastName))
}

// abstractSection is one AbstractText element. Structured abstracts carry
// a Label attribute per section.
type abstractSection struct {
	Label string
	Text  string
}

func (s *abstractSection) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "Label" {
			s.Label = strings.TrimSpace(attr.Value)
		}
	}
	text, err := collectText(d)
	s.Text = text
	return err
}

// markupText collects the character data of an element and all of its
// descendants, so inline tags such as <i> or <sup> flatten to plain text.
type markupText struct {
	Text string
}

func (m *markupText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	text, err := collectText(d)
	m.Text = text
	return err
}

// collectText consumes tokens up to the end of the current element and
// returns its whitespace-collapsed character data.
func collectText(d *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(t)
		}
	}
	return strings.Join(strings.Fields(b.String()), " "), nil
}

// abstract joins the sections of a structured abstract with single spaces.
// Labelled sections read "LABEL: text".
func (a *pubmedArticle) abstract() string {
	parts := make([]string, 0, len(a.Citation.Article.Abstract.Sections))
	for _, s := range a.Citation.Article.Abstract.Sections {
		if s.Text == "" {
			continue
		}
		if s.Label != "" {
			parts = append(parts, s.Label+": "+s.Text)
		} else {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

func (a *pubmedArticle) journal() string {
	j := a.Citation.Article.Journal
	if t := strings.TrimSpace(j.Title); t != "" {
		return t
	}
	return strings.TrimSpace(j.ISOAbbreviation)
}

func (a *pubmedArticle) authors() []string {
	var names []string
	for _, au := range a.Citation.Article.Authors {
		if n := au.name(); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// year reads PubDate>Year, or the leading year of a free-form MedlineDate
// such as "1998 Dec-1999 Jan". Zero means unknown.
func (a *pubmedArticle) year() int {
	d := a.Citation.Article.Journal.PubDate
	for _, s := range []string{d.Year, d.MedlineDate} {
		s = strings.TrimSpace(s)
		if len(s) < 4 {
			continue
		}
		if y, err := strconv.Atoi(s[:4]); err == nil && y > 0 {
			return y
		}
	}
	return 0
}
