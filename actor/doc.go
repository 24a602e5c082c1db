/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package actor routes action items to type-specific handlers and
// orchestrates their concurrent execution.
//
// Each handler turns one action item into external effects: tasks and
// features become tracker issues (features with an AI-generated PRD),
// follow-ups become reminder text, and bugs become a ticket plus a
// best-effort automated fix PR. The orchestrator sorts the batch by
// priority, fans it out, isolates per-item failures and aggregates the
// outcome; it also owns all chat reporting so handlers stay pure.
package actor
