// Package config provides configuration structures and utilities for arxiv-daily.
// It defines the main options for paper retrieval, summarization, and report
// generation, plus the classifier taxonomy and the summarization prompt.
package config
