// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package hashtable implements an open-addressed, linear-probed hash table
keyed on uint32, using Fibonacci hashing in place of modulo to pick the
initial bucket.

# Fibonacci hashing

Instead of h % capacity, the bucket is (h * 11400714819323198485) >> (64 -
log2(capacity)): a single multiply-and-shift that spreads low-entropy keys
across the table at least as well as modulo, without the division.
Capacity is always rounded up to a power of two so the shift amount is
exact.

# Reserved keys

Key 0 means "empty slot" and is never a valid key to Add. Key
0xFFFFFFFF is reserved as a tombstone marking a deleted slot: probing must
walk past tombstones (they are not a true match but are not the end of the
probe sequence either), so a slot holding a tombstone is distinct from an
empty one. Deleting by writing the empty sentinel instead would make
lookups for any key whose probe sequence passed through that slot report a
false negative once they hit it, since the probe loop would stop there
instead of continuing past it.

Table stores int32 values inline; BlobTable generalizes this to hold any
value type.
*/
package hashtable
