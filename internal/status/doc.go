// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package status reconciles installed and resident models into a single
// snapshot and turns each entry's expiry into a human-readable countdown.
//
// # Key Types
//
//   - ModelStatus: last-known residency record for one installed model
//   - Snapshot: immutable, name-ordered set of ModelStatus values
//   - Reconciler: fetches /api/tags and /api/ps and builds a Snapshot
//   - Countdown: classification of an expiry relative to "now"
//
// # Usage
//
//	r := status.NewReconciler(client, logger)
//	snap, err := r.Reconcile(ctx)
//	if err != nil {
//	    // keep showing the previous snapshot
//	}
//	for _, row := range status.Render(snap, time.Now(), status.DefaultNameWidth) {
//	    fmt.Println(row.Line)
//	}
//
// A Snapshot is never mutated after construction. Reconciliation produces a
// fresh value which the caller swaps in whole; rendering only reads it.
package status
