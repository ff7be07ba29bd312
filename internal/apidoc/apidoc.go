// Package apidoc embeds the OpenAPI description of the HTTP API.
package apidoc

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiYAML []byte

// BasePath is the server URL prefix every documented path lives under.
const BasePath = "/api"

var supportedMethods = map[string]struct{}{
	"get":     {},
	"put":     {},
	"post":    {},
	"delete":  {},
	"patch":   {},
	"head":    {},
	"options": {},
}

// Operation holds the response codes documented for one method on one path.
type Operation struct {
	Responses map[string]struct{}
}

// Spec is the subset of an OpenAPI document needed for compatibility checks.
type Spec struct {
	Paths map[string]map[string]Operation
}

// YAML returns the embedded document as written.
func YAML() []byte {
	return openapiYAML
}

var (
	jsonOnce sync.Once
	jsonDoc  []byte
	jsonErr  error
)

// JSON returns the embedded document converted to JSON.
func JSON() ([]byte, error) {
	jsonOnce.Do(func() {
		jsonDoc, jsonErr = ToJSON(openapiYAML)
	})
	return jsonDoc, jsonErr
}

// ToJSON converts a YAML OpenAPI document to JSON.
func ToJSON(raw []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI YAML: %w", err)
	}
	return json.Marshal(normalize(doc))
}

// normalize rewrites map[interface{}]interface{} values so encoding/json accepts them.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

type swagDoc struct{}

// ReadDoc implements swag.Swagger.
func (swagDoc) ReadDoc() string {
	doc, err := JSON()
	if err != nil {
		return "{}"
	}
	return string(doc)
}

var registerOnce sync.Once

// Register makes the embedded document the default swag instance, which is
// what the Swagger UI handler serves as doc.json.
func Register() {
	registerOnce.Do(func() {
		swag.Register(swag.Name, swagDoc{})
	})
}

// Embedded parses the embedded document.
func Embedded() (Spec, error) {
	return Load(openapiYAML)
}

// Load parses the paths, methods and response codes of an OpenAPI document.
func Load(raw []byte) (Spec, error) {
	doc := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Spec{}, err
	}

	pathsRaw, ok := doc["paths"]
	if !ok {
		return Spec{}, errors.New("missing top-level paths field")
	}

	pathsMap, ok := toMap(pathsRaw)
	if !ok {
		return Spec{}, errors.New("paths is not an object")
	}

	spec := Spec{Paths: make(map[string]map[string]Operation)}

	for pathKey, pathEntry := range pathsMap {
		pathOpsRaw, ok := toMap(pathEntry)
		if !ok {
			continue
		}

		ops := make(map[string]Operation)
		for methodKey, methodEntry := range pathOpsRaw {
			methodLower := strings.ToLower(strings.TrimSpace(methodKey))
			if _, supported := supportedMethods[methodLower]; !supported {
				continue
			}

			methodMap, ok := toMap(methodEntry)
			if !ok {
				continue
			}

			responseSet := make(map[string]struct{})
			if responsesRaw, exists := methodMap["responses"]; exists {
				if responsesMap, ok := toMap(responsesRaw); ok {
					for code := range responsesMap {
						normalized := strings.ToLower(strings.TrimSpace(code))
						if normalized != "" {
							responseSet[normalized] = struct{}{}
						}
					}
				}
			}

			ops[methodLower] = Operation{Responses: responseSet}
		}

		if len(ops) > 0 {
			spec.Paths[pathKey] = ops
		}
	}

	return spec, nil
}

// Routes lists every documented operation as "METHOD /path", using fiber-style
// :param segments and prefixed with BasePath.
func (s Spec) Routes() []string {
	var routes []string
	for path, ops := range s.Paths {
		for method := range ops {
			routes = append(routes, strings.ToUpper(method)+" "+BasePath+fiberPath(path))
		}
	}
	sort.Strings(routes)
	return routes
}

func fiberPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			segments[i] = ":" + strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}")
		}
	}
	return strings.Join(segments, "/")
}

func toMap(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// Compare reports paths, operations and response codes present in base but
// missing from revision, sorted.
func Compare(base, revision Spec) []string {
	var issues []string

	for path, baseOps := range base.Paths {
		revOps, ok := revision.Paths[path]
		if !ok {
			issues = append(issues, fmt.Sprintf("removed path: %s", path))
			continue
		}

		for method, baseOp := range baseOps {
			revOp, ok := revOps[method]
			if !ok {
				issues = append(issues, fmt.Sprintf("removed operation: %s %s", strings.ToUpper(method), path))
				continue
			}

			for responseCode := range baseOp.Responses {
				if _, ok := revOp.Responses[responseCode]; !ok {
					issues = append(issues, fmt.Sprintf(
						"removed response code: %s %s -> %s",
						strings.ToUpper(method), path, strings.ToUpper(responseCode),
					))
				}
			}
		}
	}

	sort.Strings(issues)
	return issues
}
