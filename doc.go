// Package ctrain is a deterministic, auditable numeric kernel for
// machine-learning training.
//
// What is ctrain?
//
//	A pure-Go, integer-only substrate that guarantees bit-identical
//	execution of a training step on any conforming platform, and lets
//	any third party verify that a step happened via a cryptographic
//	chain:
//
//	  • kernel/  — Q16.16 / Q8.24 fixed-point types, fault flags, error kinds
//	  • dvm/     — saturating add/sub/mul/div, round-to-nearest-even shifts, sqrt
//	  • prng/    — counter-based (Philox-style) deterministic random stream
//	  • accum/   — Neumaier compensated summation
//	  • reduce/  — fixed-topology binary reduction tree
//	  • permute/ — cycle-walking Feistel dataset permutation and batch indexer
//	  • tensor/  — tensor descriptors and canonical little-endian serialization
//	  • merklechain/ — SHA-256 hashing, Merkle step chain, checkpoints
//	  • layers/  — linear, activations (ReLU/sigmoid-LUT/tanh-LUT), norm, conv2d
//	  • backward/ — Q8.24 gradients and layer backpropagation
//	  • optim/   — SGD, SGD-momentum, Adam, and LR schedulers
//
// Why ctrain?
//
//   - Deterministic   — no floating point at runtime, no wall-clock, no
//     hash-map iteration order leaking into results
//   - Auditable       — every training step extends a Merkle chain that any
//     verifier can replay and check byte-for-byte
//   - Fail-loud       — arithmetic faults are sticky flags, never silent
//     poisoning; a faulted chain refuses further steps
//   - Pure Go         — tensors borrow caller-provided buffers, no cgo;
//     some operations (backward scratch, serialization, reduction trees,
//     batch indices, optimiser state) allocate their own slices
//
// Data flow of one training step:
//
//	batch indices (permute) select samples; forward layers (layers) consume
//	weights and produce activations using dvm, reduce and accum; backward
//	(backward) produces Q8.24 gradients; an optimiser (optim) updates
//	weights in Q16.16; merklechain hashes the new weights and batch and
//	extends the chain; prng supplies any required randomness.
//
//	go get github.com/williamofai/ctrain
package ctrain
