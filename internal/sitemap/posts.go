package sitemap

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kaptinlin/jsonschema"
)

// blogPostsSchema validates the blog post index before slugs are trusted.
const blogPostsSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["slug", "title", "date"],
		"properties": {
			"slug": {"type": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
			"title": {"type": "string", "minLength": 1},
			"date": {"type": "string", "format": "date"}
		},
		"additionalProperties": true
	}
}`

// BlogPost is one entry of the blog post index (blog-posts.json).
type BlogPost struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// LoadBlogSlugs reads the blog post index, validates it against the schema,
// and returns the deduplicated slugs in file order. A missing file yields no
// slugs.
func LoadBlogSlugs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read blog posts: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse blog posts: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile([]byte(blogPostsSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	result := schema.Validate(raw)
	if !result.IsValid() {
		var errorMessages []string
		for field, evalErr := range result.Errors {
			errorMessages = append(errorMessages, fmt.Sprintf("%s: %s", field, evalErr.Error()))
		}
		return nil, fmt.Errorf("blog posts validation failed: %s", strings.Join(errorMessages, "; "))
	}

	var posts []BlogPost
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode blog posts: %w", err)
	}

	seen := make(map[string]bool, len(posts))
	slugs := make([]string, 0, len(posts))
	for _, p := range posts {
		if !seen[p.Slug] {
			seen[p.Slug] = true
			slugs = append(slugs, p.Slug)
		}
	}
	return slugs, nil
}
