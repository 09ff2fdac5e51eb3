package main

import (
	"fmt"
	"time"

	"fitness-tracker/services"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute-profiles",
	Short: "Recalculate BMI and daily goals for every profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			n, err := services.NewProfileService(db).RecomputeAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recomputed %d profiles\n", n)
			return nil
		})
	},
}

var checkUserID string

var checkAchievementsCmd = &cobra.Command{
	Use:   "check-achievements",
	Short: "Unlock earned achievements for one user (--user) or every user with a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			activity := services.NewGormActivityStore(db)
			profiles := services.NewProfileService(db)
			achievements := services.NewAchievementService(db, activity, services.NewStreakService(db, activity))

			userIDs := []string{checkUserID}
			if checkUserID == "" {
				ids, err := profiles.UserIDs(cmd.Context())
				if err != nil {
					return err
				}
				userIDs = ids
			}

			now := time.Now().UTC()
			out := cmd.OutOrStdout()
			total := 0
			for _, id := range userIDs {
				unlocked, err := achievements.CheckAndUnlock(cmd.Context(), id, now)
				if err != nil {
					return fmt.Errorf("user %s: %w", id, err)
				}
				for _, a := range unlocked {
					fmt.Fprintf(out, "%s\t%s (+%d)\n", id, a.Name, a.Points)
				}
				total += len(unlocked)
			}
			fmt.Fprintf(out, "Checked %d users, %d new achievements\n", len(userIDs), total)
			return nil
		})
	},
}

func init() {
	checkAchievementsCmd.Flags().StringVar(&checkUserID, "user", "", "Only check this user ID")
	rootCmd.AddCommand(recomputeCmd)
	rootCmd.AddCommand(checkAchievementsCmd)
}
