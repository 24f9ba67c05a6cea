package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/steviee/mcskin/internal/mojang"
)

// NewPropertiesCommand creates the properties command.
func NewPropertiesCommand() *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "properties <username>",
		Short: "Show the signed profile properties of a player",
		Long: `Show the profile properties returned by the session server.

Property values are base64 encoded. Use --decode to print the decoded
textures payload instead of the raw value.`,
		Example: `  # Raw properties
  mcskin properties Notch

  # Decoded textures payload
  mcskin properties Notch --decode --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := newResolver(GetSettings(), nil)
			if err != nil {
				return outputError(cmd.OutOrStdout(), IsJSONOutput(), err)
			}
			return runProperties(cmd.Context(), cmd.OutOrStdout(), resolver, args[0], decode, IsJSONOutput())
		},
	}

	cmd.Flags().BoolVar(&decode, "decode", false, "decode the textures property")
	addLookupFlags(cmd)

	return cmd
}

func runProperties(ctx context.Context, w io.Writer, resolver Resolver, username string, decode, jsonOutput bool) error {
	res, err := resolver.Resolve(ctx, username)
	if err != nil {
		return outputError(w, jsonOutput, err)
	}

	if jsonOutput {
		return outputPropertiesJSON(w, res, decode)
	}

	return outputPropertiesHuman(w, res, decode)
}

func outputPropertiesJSON(w io.Writer, res *mojang.Resolution, decode bool) error {
	data := map[string]interface{}{
		"id":   res.Profile.ID,
		"name": res.Profile.Name,
	}
	if decode {
		data["textures"] = res.Textures
	} else {
		data["properties"] = res.Profile.Properties
	}

	return writeJSON(w, Output{
		Status: "success",
		Data:   data,
	})
}

func outputPropertiesHuman(w io.Writer, res *mojang.Resolution, decode bool) error {
	_, _ = fmt.Fprintf(w, "%s (%s)\n\n", res.Profile.Name, mojang.FormatUUID(res.Profile.ID))

	if decode {
		return outputTexturesHuman(w, res.Textures)
	}

	if len(res.Profile.Properties) == 0 {
		_, _ = fmt.Fprintln(w, "No properties.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tSIGNED\tVALUE")
	for _, prop := range res.Profile.Properties {
		signed := "no"
		if prop.Signature != "" {
			signed = "yes"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", prop.Name, signed, prop.Value)
	}

	return tw.Flush()
}

func outputTexturesHuman(w io.Writer, payload *mojang.TexturesPayload) error {
	if payload == nil {
		_, _ = fmt.Fprintln(w, "No textures property.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Timestamp:\t%s\n", time.UnixMilli(payload.Timestamp).UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintf(tw, "Profile:\t%s (%s)\n", payload.ProfileName, payload.ProfileID)

	skin := "-"
	model := mojang.ModelClassic
	if s := payload.Textures.Skin; s != nil {
		skin = s.URL
		if s.Metadata != nil && s.Metadata.Model != "" {
			model = s.Metadata.Model
		}
	}
	_, _ = fmt.Fprintf(tw, "Skin:\t%s\n", skin)
	_, _ = fmt.Fprintf(tw, "Model:\t%s\n", model)

	cape := "-"
	if c := payload.Textures.Cape; c != nil {
		cape = c.URL
	}
	_, _ = fmt.Fprintf(tw, "Cape:\t%s\n", cape)

	return tw.Flush()
}
