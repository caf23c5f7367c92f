package xref

import (
	"context"
	"strings"

	"github.com/pathmark/pathmark/pkg/model"
)

// builtinSources is the registry of data sources pathway documents commonly
// reference. Lookup is by full name or system code, case-insensitively.
var builtinSources = []DataSource{
	{Name: "Ensembl", Code: "En", Type: SourceGene, URLPattern: "https://www.ensembl.org/id/$id"},
	{Name: "Entrez Gene", Code: "L", Type: SourceGene, URLPattern: "https://www.ncbi.nlm.nih.gov/gene/$id"},
	{Name: "HGNC", Code: "H", Type: SourceGene, URLPattern: "https://www.genenames.org/data/gene-symbol-report/#!/hgnc_id/$id"},
	{Name: "miRBase Sequence", Code: "Mbs", Type: SourceGene, URLPattern: "https://www.mirbase.org/hairpin/$id"},
	{Name: "UniProtKB", Code: "S", Type: SourceProtein, URLPattern: "https://www.uniprot.org/uniprotkb/$id"},
	{Name: "Enzyme Nomenclature", Code: "E", Type: SourceProtein, URLPattern: "https://enzyme.expasy.org/EC/$id"},
	{Name: "ChEBI", Code: "Ce", Type: SourceMetabolite, URLPattern: "https://www.ebi.ac.uk/chebi/searchId.do?chebiId=$id"},
	{Name: "HMDB", Code: "Ch", Type: SourceMetabolite, URLPattern: "https://hmdb.ca/metabolites/$id"},
	{Name: "PubChem-compound", Code: "Cpc", Type: SourceMetabolite, URLPattern: "https://pubchem.ncbi.nlm.nih.gov/compound/$id"},
	{Name: "CAS", Code: "Ca", Type: SourceMetabolite, URLPattern: "https://commonchemistry.cas.org/results?q=$id"},
	{Name: "KEGG Compound", Code: "Ck", Type: SourceMetabolite, URLPattern: "https://www.kegg.jp/entry/$id"},
	{Name: "KEGG Pathway", Code: "Kp", Type: SourcePathway, URLPattern: "https://www.kegg.jp/entry/$id"},
	{Name: "Reactome", Code: "Re", Type: SourcePathway, URLPattern: "https://reactome.org/content/detail/$id"},
	{Name: "WikiPathways", Code: "Wp", Type: SourcePathway, URLPattern: "https://www.wikipathways.org/pathways/$id"},
	{Name: "Rhea", Code: "Rh", Type: SourceInteraction, URLPattern: "https://www.rhea-db.org/rhea/$id"},
	{Name: "PubMed", Code: "Pm", Type: SourcePublication, URLPattern: "https://pubmed.ncbi.nlm.nih.gov/$id"},
	{Name: "DOI", Code: "Do", Type: SourcePublication, URLPattern: "https://doi.org/$id"},
	{Name: "Gene Ontology", Code: "T", Type: SourceOntology, URLPattern: "https://amigo.geneontology.org/amigo/term/$id"},
	{Name: "Disease Ontology", Code: "Dis", Type: SourceOntology, URLPattern: "https://disease-ontology.org/?id=$id"},
	{Name: "Wikidata", Code: "Wd", Type: SourceOntology, URLPattern: "https://www.wikidata.org/wiki/$id"},
}

// StaticResolver resolves against the built-in registry.
type StaticResolver struct {
	byKey map[string]DataSource
}

// NewStaticResolver creates a resolver over the built-in registry plus any
// extra sources.
func NewStaticResolver(extra ...DataSource) *StaticResolver {
	r := &StaticResolver{byKey: make(map[string]DataSource, 2*(len(builtinSources)+len(extra)))}
	for _, ds := range builtinSources {
		r.register(ds)
	}
	for _, ds := range extra {
		r.register(ds)
	}
	return r
}

func (r *StaticResolver) register(ds DataSource) {
	r.byKey[strings.ToLower(ds.Name)] = ds
	if ds.Code != "" {
		r.byKey[strings.ToLower(ds.Code)] = ds
	}
}

// Resolve looks the xref's data source up by name or code.
// Returns nil, nil when the source is not registered.
func (r *StaticResolver) Resolve(_ context.Context, x model.Xref) (*Entry, error) {
	ds, ok := r.byKey[strings.ToLower(x.DataSource)]
	if !ok {
		return nil, nil
	}
	return &Entry{Xref: x, Source: ds, URL: ds.URL(x.Identifier)}, nil
}

// Sources lists the registered data sources.
func (r *StaticResolver) Sources() []DataSource {
	seen := make(map[string]bool, len(r.byKey))
	var out []DataSource
	for _, ds := range r.byKey {
		if seen[ds.Name] {
			continue
		}
		seen[ds.Name] = true
		out = append(out, ds)
	}
	return out
}

var _ Resolver = (*StaticResolver)(nil)
