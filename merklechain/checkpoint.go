package merklechain

import (
	"encoding/binary"

	"github.com/williamofai/ctrain/kernel"
)

const (
	opSerializeCheckpoint   = "merklechain.SerializeCheckpoint"
	opDeserializeCheckpoint = "merklechain.DeserializeCheckpoint"
	opRestore               = "merklechain.Restore"
)

// CheckpointMagic is the literal byte tag every checkpoint begins with.
const CheckpointMagic uint32 = 0x4B435443 // "CTCK" read as a little-endian u32

// CheckpointVersion is the format version this package writes and the
// newest version it will accept on read.
const CheckpointVersion uint32 = 1

// CheckpointSize is the byte length of a serialized checkpoint: 152
// fixed-layout bytes plus 12 reserved-zero bytes, per the external byte
// layout. A deserializer accepts either length; SerializeCheckpoint
// always emits the full 164.
const CheckpointSize = 164

const checkpointFixedSize = 152

// Checkpoint is the resumable snapshot of a Merkle chain's integrity
// state: everything needed to verify that a training run reached this
// point, without the weight buffers themselves.
type Checkpoint struct {
	Version      uint32
	StepNum      uint64
	Epoch        uint32
	MerkleHash   Hash
	WeightsHash  Hash
	ConfigHash   Hash
	PRNGSeed     uint64
	PRNGOpID     uint64
	PRNGStep     uint64
	FaultFlags   kernel.Faults
	TimestampSec uint64
}

// SerializeCheckpoint encodes c into the canonical 164-byte little-endian
// layout. The timestamp occupies bytes [144:152] but is excluded from
// CheckpointHash.
func SerializeCheckpoint(c Checkpoint) []byte {
	buf := make([]byte, CheckpointSize)
	binary.LittleEndian.PutUint32(buf[0:4], CheckpointMagic)
	binary.LittleEndian.PutUint32(buf[4:8], c.Version)
	binary.LittleEndian.PutUint64(buf[8:16], c.StepNum)
	binary.LittleEndian.PutUint32(buf[16:20], c.Epoch)
	copy(buf[20:52], c.MerkleHash[:])
	copy(buf[52:84], c.WeightsHash[:])
	copy(buf[84:116], c.ConfigHash[:])
	binary.LittleEndian.PutUint64(buf[116:124], c.PRNGSeed)
	binary.LittleEndian.PutUint64(buf[124:132], c.PRNGOpID)
	binary.LittleEndian.PutUint64(buf[132:140], c.PRNGStep)
	binary.LittleEndian.PutUint32(buf[140:144], uint32(c.FaultFlags))
	binary.LittleEndian.PutUint64(buf[144:152], c.TimestampSec)
	// buf[152:164] stays reserved-zero.
	return buf
}

// DeserializeCheckpoint decodes a checkpoint previously written by
// SerializeCheckpoint. It rejects a wrong magic and any version newer
// than CheckpointVersion. Both the 152-byte (reserved bytes omitted) and
// 164-byte (full) encodings are accepted.
func DeserializeCheckpoint(buf []byte) (Checkpoint, error) {
	var c Checkpoint
	if len(buf) != checkpointFixedSize && len(buf) != CheckpointSize {
		return c, kernel.Errorf(opDeserializeCheckpoint, kernel.Memory, "checkpoint must be %d or %d bytes, got %d", checkpointFixedSize, CheckpointSize, len(buf))
	}
	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != CheckpointMagic {
		return c, kernel.Errorf(opDeserializeCheckpoint, kernel.Config, "bad magic %#x", magic)
	}
	version := binary.LittleEndian.Uint32(buf[4:8])
	if version > CheckpointVersion {
		return c, kernel.Errorf(opDeserializeCheckpoint, kernel.Config, "checkpoint version %d is newer than supported version %d", version, CheckpointVersion)
	}

	c.Version = version
	c.StepNum = binary.LittleEndian.Uint64(buf[8:16])
	c.Epoch = binary.LittleEndian.Uint32(buf[16:20])
	copy(c.MerkleHash[:], buf[20:52])
	copy(c.WeightsHash[:], buf[52:84])
	copy(c.ConfigHash[:], buf[84:116])
	c.PRNGSeed = binary.LittleEndian.Uint64(buf[116:124])
	c.PRNGOpID = binary.LittleEndian.Uint64(buf[124:132])
	c.PRNGStep = binary.LittleEndian.Uint64(buf[132:140])
	c.FaultFlags = kernel.Faults(binary.LittleEndian.Uint32(buf[140:144]))
	if len(buf) == CheckpointSize {
		c.TimestampSec = binary.LittleEndian.Uint64(buf[144:152])
	}
	return c, nil
}

// CheckpointHash returns the integrity hash of c, covering every field
// except TimestampSec. Two checkpoints that differ only in timestamp
// hash identically.
func CheckpointHash(c Checkpoint) Hash {
	withoutTimestamp := c
	withoutTimestamp.TimestampSec = 0
	enc := SerializeCheckpoint(withoutTimestamp)
	return sum256(enc[:144], enc[152:])
}

// Restore repopulates a Context's CurrentHash, StepNum, Epoch, and fault
// state from c. Per the data model, it does not touch weight buffers:
// those live outside the checkpoint and must be verified separately by
// the caller (typically via VerifyStep or a fresh HashTensor compare
// against c.WeightsHash). A checkpoint restored from a fault-flagged
// snapshot yields a context already in fault state.
func Restore(ctx *Context, c Checkpoint) {
	ctx.InitialHash = Hash{}
	ctx.CurrentHash = c.MerkleHash
	ctx.StepNum = c.StepNum
	ctx.Epoch = c.Epoch
	ctx.Initialized = true
	ctx.Faulted = c.FaultFlags.HasFault()
}
