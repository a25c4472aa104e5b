/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Input self-check. Parses the configured feature table, inventory and
languages dataset and reports anything a search run would trip over.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/featuremin/pkg/features"
	"github.com/kleascm/featuremin/pkg/inventory"
	"github.com/kleascm/featuremin/pkg/ux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunCheck validates the configured input files
func RunCheck(cmd *cobra.Command, args []string) error {
	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ux.Styles.Title.Render("featuremin input check"))

	table, err := loadTable()
	if err != nil {
		fmt.Fprintf(out, "%s Feature table: %v\n", ux.IconError.Render(), err)
		return err
	}
	fmt.Fprintf(out, "%s Feature table: %d phonemes, %d features\n", ux.IconSuccess.Render(), table.NumPhonemes(), len(table.FeatureNames()))

	failed := 0
	if viper.GetString("language_file") != "" {
		lang, err := loadInventory(table)
		if err != nil {
			fmt.Fprintf(out, "%s Inventory: %v\n", ux.IconError.Render(), err)
			failed++
		} else {
			reportMissing(cmd, table, lang)
		}
	}

	if path := viper.GetString("languages"); path != "" {
		languages, err := inventory.LoadLanguages(path)
		if err != nil {
			fmt.Fprintf(out, "%s Languages: %v\n", ux.IconError.Render(), err)
			failed++
		} else {
			fmt.Fprintf(out, "%s Languages: %d inventories\n", ux.IconSuccess.Render(), len(languages))
			for _, lang := range languages {
				reportMissing(cmd, table, lang)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d input files failed to load", failed)
	}
	logger.Debug("Input check passed", nil)
	return nil
}

// reportMissing prints inventory phonemes the table does not know
func reportMissing(cmd *cobra.Command, table *features.Table, lang inventory.Language) {
	var missing []string
	for _, p := range lang.Phonemes {
		if _, ok := table.Index(p); !ok {
			missing = append(missing, p)
		}
	}

	out := cmd.OutOrStdout()
	if len(missing) == 0 {
		fmt.Fprintf(out, "%s %s: %d phonemes\n", ux.IconSuccess.Render(), lang.Name, len(lang.Phonemes))
		return
	}
	fmt.Fprintf(out, "%s %s: %d phonemes, not in the table: %s\n", ux.IconWarning.Render(), lang.Name, len(lang.Phonemes), ux.Set(missing))
}
