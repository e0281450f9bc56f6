package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"listing-service/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Имена схем запросов, ключи в реестре
const (
	SchemaProperty             = "property"
	SchemaInquiry              = "inquiry"
	SchemaUserRegistration     = "user_registration"
	SchemaVerificationDocument = "verification_document"
	SchemaAgent                = "agent"
)

//go:embed schemas/*.json
var schemasFS embed.FS

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Добавляем все схемы как ресурсы
	// Это нужно, чтобы схемы могли ссылаться друг на друга через `$ref`
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			file, _ := schemasFS.Open(path)
			defer file.Close()
			if err := compiler.AddResource(path, file); err != nil {
				log.Fatalf("failed to add schema resource %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	// Снова обходим для компиляции и регистрации
	err = fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			schema, err := compiler.Compile(path)
			if err != nil {
				log.Fatalf("could not compile schema %s: %v", path, err)
			}

			key := strings.TrimSuffix(strings.TrimPrefix(path, "schemas/"), ".json")
			compiledSchemas[key] = schema
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and compiling schemas: %v", err)
	}
}

// ValidateRequest проверяет тело запроса по именованной схеме.
// Нарушения возвращаются как *domain.ValidationError с полем на каждое
// сообщение; битый JSON попадает в non_field_errors.
func ValidateRequest(schemaName string, body []byte) error {
	schema, ok := compiledSchemas[schemaName]
	if !ok {
		return fmt.Errorf("schema '%s' not found", schemaName)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		verr := domain.NewValidationError()
		verr.Add("non_field_errors", "request body is not valid JSON")
		return verr
	}

	if err := schema.Validate(v); err != nil {
		var schemaErr *jsonschema.ValidationError
		if ok := asValidationError(err, &schemaErr); ok {
			return toFieldErrors(schemaErr)
		}
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}

	return nil
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if ok {
		*target = ve
	}
	return ok
}

// toFieldErrors раскладывает дерево причин валидации по именам полей.
// Для каждого поля сохраняется только первое сообщение.
func toFieldErrors(root *jsonschema.ValidationError) *domain.ValidationError {
	verr := domain.NewValidationError()
	collectLeaves(root, verr)
	if verr.Empty() {
		verr.Add("non_field_errors", root.Message)
	}
	return verr
}

func collectLeaves(node *jsonschema.ValidationError, verr *domain.ValidationError) {
	if len(node.Causes) == 0 {
		verr.Add(fieldFromLocation(node.InstanceLocation, node.Message), node.Message)
		return
	}
	for _, cause := range node.Causes {
		collectLeaves(cause, verr)
	}
}

// fieldFromLocation выводит имя поля из instance location ("/email" -> "email").
// Ошибки уровня объекта ("missing properties: ...") приписываются
// пропущенному полю, если его удается извлечь из сообщения.
func fieldFromLocation(location, message string) string {
	if location != "" {
		parts := strings.SplitN(strings.TrimPrefix(location, "/"), "/", 2)
		if parts[0] != "" {
			return parts[0]
		}
	}

	const missingPrefix = "missing properties: "
	if idx := strings.Index(message, missingPrefix); idx >= 0 {
		rest := message[idx+len(missingPrefix):]
		field := strings.Trim(strings.SplitN(rest, ",", 2)[0], "'")
		if field != "" {
			return field
		}
	}

	return "non_field_errors"
}
