package gpml_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/pathmark/pathmark/pkg/gpml"
)

// Read a document and inspect the detected generation and graph contents.
func ExampleRead() {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<Pathway xmlns="http://pathvisio.org/GPML/2013a" Name="Example" Organism="Homo sapiens">
  <Graphics BoardWidth="500.0" BoardHeight="400.0"/>
  <DataNode GraphId="n1" TextLabel="TP53" Type="GeneProduct">
    <Graphics CenterX="100.0" CenterY="100.0" Width="50.0" Height="20.0"/>
    <Xref Database="Ensembl" ID="ENSG00000141510"/>
  </DataNode>
  <InfoBox CenterX="0.0" CenterY="0.0"/>
</Pathway>`

	p, ver, err := gpml.Read(context.Background(), strings.NewReader(doc))
	if err != nil {
		panic(err)
	}

	fmt.Println(ver)
	fmt.Println(p.Title)
	fmt.Println(len(p.DataNodes()))
	// Output:
	// GPML2013a
	// Example
	// 1
}
