package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	appErrors "github.com/unclebandit/campaign-generator/internal/errors"
	"github.com/unclebandit/campaign-generator/internal/model"
)

type property struct {
	name   string
	schema *genai.Schema
}

func object(props ...property) *genai.Schema {
	s := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(props)),
	}
	for _, p := range props {
		s.Properties[p.name] = p.schema
		s.Required = append(s.Required, p.name)
		s.PropertyOrdering = append(s.PropertyOrdering, p.name)
	}
	return s
}

func arrayOf(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

func str() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

// CampaignSchema mirrors model.CampaignOutput. Every property is required.
func CampaignSchema() *genai.Schema {
	return object(
		property{"coreMessaging", object(
			property{"taglines", arrayOf(str())},
			property{"valuePropositions", arrayOf(str())},
		)},
		property{"targetPersona", object(
			property{"name", str()},
			property{"demographics", str()},
			property{"goals", arrayOf(str())},
			property{"challenges", arrayOf(str())},
		)},
		property{"socialMediaStrategy", object(
			property{"platform", str()},
			property{"contentPillars", arrayOf(str())},
			property{"samplePosts", arrayOf(object(
				property{"platform", str()},
				property{"text", str()},
				property{"imagePrompt", str()},
			))},
		)},
		property{"emailMarketing", object(
			property{"subjectLines", arrayOf(str())},
			property{"sampleEmail", object(
				property{"subject", str()},
				property{"body", str()},
			)},
		)},
		property{"blogStrategy", object(
			property{"postIdeas", arrayOf(str())},
			property{"sampleOutline", object(
				property{"title", str()},
				property{"outline", arrayOf(str())},
			)},
		)},
	)
}

// ParseCampaignOutput turns the model's text into a CampaignOutput. Anything that is not JSON
// of exactly the campaign shape fails with ErrMalformedResponse.
func ParseCampaignOutput(raw string) (*model.CampaignOutput, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", appErrors.ErrMalformedResponse)
	}

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrMalformedResponse, err)
	}
	if err := conforms(CampaignSchema(), doc, "$"); err != nil {
		return nil, err
	}

	var out model.CampaignOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrMalformedResponse, err)
	}
	return &out, nil
}

func conforms(schema *genai.Schema, v any, path string) error {
	switch schema.Type {
	case genai.TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, "object", v)
		}
		for _, name := range schema.PropertyOrdering {
			child, present := obj[name]
			if !present {
				return fmt.Errorf("%w: missing %s.%s", appErrors.ErrMalformedResponse, path, name)
			}
			if err := conforms(schema.Properties[name], child, path+"."+name); err != nil {
				return err
			}
		}
	case genai.TypeArray:
		items, ok := v.([]any)
		if !ok {
			return mismatch(path, "array", v)
		}
		for i, item := range items {
			if err := conforms(schema.Items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case genai.TypeString:
		if _, ok := v.(string); !ok {
			return mismatch(path, "string", v)
		}
	default:
		return fmt.Errorf("unsupported schema type %q at %s", schema.Type, path)
	}
	return nil
}

func mismatch(path, want string, got any) error {
	return fmt.Errorf("%w: %s must be %s, got %T", appErrors.ErrMalformedResponse, path, want, got)
}
