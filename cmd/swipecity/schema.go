package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/peterkuimelis/swipecity/internal/config"
	"github.com/peterkuimelis/swipecity/internal/game"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:       "schema [catalog|config]",
	Short:     "Print the JSON Schema for card catalogs or config files",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"catalog", "config"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := "catalog"
		if len(args) == 1 {
			kind = args[0]
		}
		schema := buildSchema(kind)

		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal schema: %w", err)
		}
		data = append(data, '\n')

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("create schema directory: %w", err)
		}
		return os.WriteFile(out, data, 0o644)
	},
}

func init() {
	schemaCmd.Flags().StringP("out", "o", "", "write the schema to a file instead of stdout")
	rootCmd.AddCommand(schemaCmd)
}

var resourceType = reflect.TypeOf(game.ResourceType(0))

// resourceEnum describes ResourceType by name, the way catalogs spell it.
func resourceEnum(t reflect.Type) *jsonschema.Schema {
	if t != resourceType {
		return nil
	}
	names := make([]any, 0, game.ResourceCount)
	for _, rt := range game.AllResources {
		names = append(names, rt.String())
	}
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        names,
		Description: "Resource name (case-insensitive)",
	}
}

func buildSchema(kind string) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		Mapper:                     resourceEnum,
		RequiredFromJSONSchemaTags: true,
	}
	if kind == "config" {
		schema := reflector.Reflect(new(config.Config))
		schema.Title = "Swipe City Config"
		schema.Description = "Validates swipecity.yaml"
		return schema
	}
	schema := reflector.Reflect(new(game.CatalogFile))
	schema.Title = "Swipe City Card Catalog"
	schema.Description = "Validates designer-authored card catalogs"
	return schema
}
