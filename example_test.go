package gpdf_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/porticus-lab/gpdf"
)

func Example() {
	// Collect the current directory's PDFs and search them. Matching is
	// always case-insensitive.
	inputs, err := gpdf.CollectInputs(nil, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	results, err := gpdf.Search(context.Background(), "invoice", inputs)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results.Records() {
		fmt.Printf("%s:%s: %s\n", r.SourcePath, r.Location, r.Context("[", "]"))
	}
}

func Example_searcher() {
	s, err := gpdf.NewSearcher("total\\s+due",
		gpdf.WithContextWindow(60),
		gpdf.WithWarnWriter(os.Stderr),
	)
	if err != nil {
		log.Fatal(err)
	}

	results, err := s.Search(context.Background(), []string{"reports/q1.pdf", "reports/q2.pdf"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d matches on %d pages\n", results.Len(), len(results.MatchedPages()))
}

func Example_mergedReport() {
	inputs, err := gpdf.CollectInputs([]string{"contracts"}, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	results, err := gpdf.Search(context.Background(), "liability", inputs)
	if err != nil {
		log.Fatal(err)
	}

	// Collect every matching page into one PDF behind a clickable
	// table of contents.
	m, err := gpdf.NewMerger(gpdf.MergeConfig{Title: "Liability clauses", Warn: os.Stderr})
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	m.AddAll(results)
	pages, err := m.Write(context.Background(), "liability.pdf")
	if err != nil {
		log.Fatal(err)
	}

	// Link the HTML index to the merged pages.
	err = gpdf.WriteIndex("liability.html", results, gpdf.ReportConfig{
		Title:        "Liability clauses",
		Pattern:      "liability",
		SummaryName:  "liability.pdf",
		SummaryPages: pages,
	})
	if err != nil {
		log.Fatal(err)
	}
}
