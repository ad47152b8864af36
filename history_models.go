package main

import (
	"time"

	"gorm.io/gorm"
)

// ShareLogModel records every reshare attempt, including dry runs and failures.
type ShareLogModel struct {
	gorm.Model
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CycleID   string    `gorm:"column:cycle_id;index" json:"cycle_id"`
	TweetID   string    `gorm:"column:tweet_id;index" json:"tweet_id"`
	Author    string    `gorm:"column:author;index" json:"author"`
	Text      string    `gorm:"column:text" json:"text"`
	Strategy  string    `gorm:"column:strategy;index" json:"strategy"`
	Outcome   string    `gorm:"column:outcome;index" json:"outcome"` // "shared", "dry_run", "failed"
	DryRun    bool      `gorm:"column:dry_run" json:"dry_run"`
	SharedAt  time.Time `gorm:"column:shared_at;index" json:"shared_at"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ShareLogModel) TableName() string {
	return "share_logs"
}

// SkipLogModel records candidates rejected by the block lists.
type SkipLogModel struct {
	gorm.Model
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CycleID     string    `gorm:"column:cycle_id;index" json:"cycle_id"`
	TweetID     string    `gorm:"column:tweet_id;index" json:"tweet_id"`
	Author      string    `gorm:"column:author;index" json:"author"`
	Text        string    `gorm:"column:text" json:"text"`
	Strategy    string    `gorm:"column:strategy;index" json:"strategy"`
	Reason      string    `gorm:"column:reason;index" json:"reason"` // "blocked_account", "blocked_word"
	BlockedWord string    `gorm:"column:blocked_word" json:"blocked_word,omitempty"`
	SkippedAt   time.Time `gorm:"column:skipped_at;index" json:"skipped_at"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (SkipLogModel) TableName() string {
	return "skip_logs"
}

// CycleLogModel records one control-loop cycle and which strategy ended it.
type CycleLogModel struct {
	gorm.Model
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CycleID       string    `gorm:"column:cycle_id;uniqueIndex" json:"cycle_id"`
	Outcome       string    `gorm:"column:outcome;index" json:"outcome"` // "found", "empty"
	Strategy      string    `gorm:"column:strategy" json:"strategy,omitempty"`
	StrategyIndex int       `gorm:"column:strategy_index" json:"strategy_index"`
	Searches      int       `gorm:"column:searches" json:"searches"`
	FinishedAt    time.Time `gorm:"column:finished_at;index" json:"finished_at"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CycleLogModel) TableName() string {
	return "cycle_logs"
}
