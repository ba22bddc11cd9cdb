package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/jhoicas/Empaques-api/internal/domain/packing"
)

var (
	snapshotPath string
	jsonOutput   bool
	maxDepth     int
)

var rootCmd = &cobra.Command{
	Use:   "packctl",
	Short: "Motor de empaques sin servidor: valida, convierte y planifica sobre una instantánea JSON",
	Long: `packctl corre el motor de jerarquías de empaque directamente sobre un
archivo de instantánea (árbol más stock), sin base de datos ni API.
Útil para auditar árboles exportados, reproducir conversiones y simular
planes de picking en soporte.`,
	SilenceUsage: true,
}

// Execute corre el CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "file", "f", "snapshot.json", "archivo de instantánea (árbol + stock)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "salida JSON cruda en lugar de texto")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "profundidad máxima del árbol (0 = tope por defecto)")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newConsolidateCmd())
	rootCmd.AddCommand(newOptimizeCmd())
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Valida la estructura del árbol de la instantánea",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, nodes, _, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			report := packing.NewValidator(maxDepth).Validate(snap.ProductID, nodes)
			if jsonOutput {
				return printJSON(report)
			}
			for _, issue := range report.Errors {
				color.Red("  ERROR  %-22s %s (%s)", issue.Code, issue.Message, issue.PackagingID)
			}
			for _, issue := range report.Warnings {
				color.Yellow("  AVISO  %-22s %s (%s)", issue.Code, issue.Message, issue.PackagingID)
			}
			if report.IsValid {
				color.Green("árbol válido: %d nodos, %d advertencias", len(nodes), len(report.Warnings))
				return nil
			}
			return fmt.Errorf("árbol inválido: %d errores", len(report.Errors))
		},
	}
}

func newConvertCmd() *cobra.Command {
	var quantityStr, fromID, toID string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convierte una cantidad entre dos empaques de la instantánea",
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := decimal.NewFromString(quantityStr)
			if err != nil {
				return fmt.Errorf("cantidad inválida %q: %w", quantityStr, err)
			}
			snap, nodes, _, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			if report := packing.NewValidator(maxDepth).Validate(snap.ProductID, nodes); !report.IsValid {
				return fmt.Errorf("árbol inválido: corra `packctl validate` para el detalle")
			}
			result, err := packing.NewConverter(nodes).Convert(quantity, fromID, toID)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(result)
			}
			color.Green("%s → %s unidades destino", quantity, result.ConvertedQuantity)
			if !result.IsExact {
				color.Yellow("conversión no exacta (la división deja residuo)")
			}
			for _, step := range result.Path {
				fmt.Printf("  vía %s (%s, x%s)\n", step.Name, step.PackagingID, step.Multiplier)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&quantityStr, "quantity", "", "cantidad en unidades del empaque origen")
	cmd.Flags().StringVar(&fromID, "from", "", "ID del empaque origen")
	cmd.Flags().StringVar(&toID, "to", "", "ID del empaque destino")
	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newConsolidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consolidate",
		Short: "Consolida el stock de la instantánea en unidades base",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, nodes, rows, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			if report := packing.NewValidator(maxDepth).Validate(snap.ProductID, nodes); !report.IsValid {
				return fmt.Errorf("árbol inválido: corra `packctl validate` para el detalle")
			}
			result, err := packing.NewConsolidator().Consolidate(snap.ProductID, nodes, rows)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(result)
			}
			color.Green("producto %s: %s unidades base en %d ubicaciones (%d filas)",
				result.Consolidated.ProductID,
				result.Consolidated.TotalBaseUnits,
				result.Consolidated.LocationsCount,
				result.Consolidated.ItemsCount,
			)
			for _, line := range result.PerPackaging {
				fmt.Printf("  %-30s nivel %d: %s ub totales = %s enteros + %s sobrante\n",
					line.Name, line.Level, line.TotalBaseUnits, line.AvailablePackages, line.RemainingBaseUnits)
			}
			return nil
		},
	}
}

func newOptimizeCmd() *cobra.Command {
	var quantityStr string
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Calcula el plan de picking voraz para una cantidad en unidades base",
		RunE: func(cmd *cobra.Command, args []string) error {
			requested, err := decimal.NewFromString(quantityStr)
			if err != nil {
				return fmt.Errorf("cantidad inválida %q: %w", quantityStr, err)
			}
			snap, nodes, rows, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			if report := packing.NewValidator(maxDepth).Validate(snap.ProductID, nodes); !report.IsValid {
				return fmt.Errorf("árbol inválido: corra `packctl validate` para el detalle")
			}
			consolidated, err := packing.NewConsolidator().Consolidate(snap.ProductID, nodes, rows)
			if err != nil {
				return err
			}
			plan, err := packing.NewOptimizer().Optimize(requested, nodes, consolidated.PerPackaging)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(plan)
			}
			for _, item := range plan.Plan {
				fmt.Printf("  %s x%s = %s unidades base (%s)\n", item.Name, item.Quantity, item.BaseUnits, item.PackagingID)
			}
			if plan.CanFulfill {
				color.Green("plan completo: %s unidades base", plan.TotalPlanned)
			} else {
				color.Yellow("plan parcial: %s planificadas, faltan %s", plan.TotalPlanned, plan.Remaining)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&quantityStr, "quantity", "", "cantidad solicitada en unidades base")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}
