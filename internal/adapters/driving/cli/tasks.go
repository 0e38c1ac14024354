package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

var tasksJSON bool

var tasksCmd = &cobra.Command{
	Use:   "tasks [task-id]",
	Short: "Show bulk ingestion tasks",
	Long: `Lists bulk ingestion tasks, most recent first. With a task id,
shows that task's progress and per-file outcomes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTasks,
}

func init() {
	tasksCmd.Flags().BoolVar(&tasksJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, args []string) error {
	if taskService == nil {
		return errors.New("task service not configured")
	}

	ctx := context.Background()

	if len(args) == 1 {
		task, err := taskService.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}
		if tasksJSON {
			return outputJSON(cmd, task)
		}
		return outputTaskDetail(cmd, task)
	}

	tasks, err := taskService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasksJSON {
		return outputJSON(cmd, tasks)
	}
	return outputTaskTable(cmd, tasks)
}

func outputTaskTable(cmd *cobra.Command, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		cmd.Println("No tasks found.")
		return nil
	}

	cmd.Println("Tasks:")
	cmd.Println()
	for _, task := range tasks {
		cmd.Printf("  %s  %-10s  %d/%d  started %s\n",
			task.ID, task.Status, task.Current, task.Total,
			task.StartedAt.Format("2006-01-02 15:04:05"))
	}
	cmd.Printf("\nTotal: %d tasks\n", len(tasks))
	return nil
}

func outputTaskDetail(cmd *cobra.Command, task *domain.Task) error {
	cmd.Printf("Task: %s\n\n", task.ID)
	cmd.Printf("  Status:    %s\n", task.Status)
	cmd.Printf("  Progress:  %d/%d\n", task.Current, task.Total)
	if task.CurrentFile != "" && !task.Status.Terminal() {
		cmd.Printf("  Current:   %s\n", task.CurrentFile)
	}
	cmd.Printf("  Started:   %s\n", task.StartedAt.Format("2006-01-02 15:04:05"))
	if task.CompletedAt != nil {
		cmd.Printf("  Completed: %s\n", task.CompletedAt.Format("2006-01-02 15:04:05"))
	}

	if task.Result != nil {
		cmd.Printf("\n  Result: %d successful, %d skipped, %d failed\n",
			task.Result.Successful, task.Result.Skipped, task.Result.Failed)
	}

	if len(task.ProcessedFiles) > 0 {
		cmd.Println("\n  Files:")
		for _, file := range task.ProcessedFiles {
			if file.Detail != "" {
				cmd.Printf("    %-30s %s: %s\n", file.Filename, file.Status, file.Detail)
			} else {
				cmd.Printf("    %-30s %s\n", file.Filename, file.Status)
			}
		}
	}

	if len(task.Errors) > 0 {
		cmd.Println("\n  Errors:")
		for _, msg := range task.Errors {
			cmd.Printf("    %s\n", msg)
		}
	}

	return nil
}

// outputJSON renders any value as indented JSON. Shared by the
// machine-output paths of the task, document and query commands.
func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
