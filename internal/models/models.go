package models

// Document type labels stored in index entry metadata. Retrieval filters on
// these so resume samples never leak into the market context.
const (
	DocTypeJobPosting   = "job_posting"
	DocTypeResumeSample = "resume_sample"
)

// Chunk is a bounded span of text cut from a source document.
type Chunk struct {
	Content  string
	Sequence int
}

// ChunkEmbedding pairs a chunk with its vector and source metadata, ready to
// be written to the index.
type ChunkEmbedding struct {
	Content        string
	Embedding      []float32
	SourceFilename string
	DocType        string
	Sequence       int
}

// Source identifies where a retrieved chunk came from.
type Source struct {
	Filename   string  `json:"filename"`
	Similarity float32 `json:"similarity"`
}

// Report is the output of a gap analysis. Content is the model's markdown
// verbatim; Sources list the postings that grounded it.
type Report struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Sources []Source `json:"sources"`
}
