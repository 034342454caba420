// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package delivery tracks the lifecycle of optimistically-sent messages.
//
// Every outgoing message gets a pending entry before its network call is
// dispatched, keyed by a client-generated ID. The entry moves from
// in-flight to sent or failed exactly once per resolution (a later marker
// overwrites an earlier one - last write wins), and failed entries remain
// visible until the session changes. A send that succeeds is resolved out
// of the pending set once its confirmed copy lands in the session store.
package delivery
