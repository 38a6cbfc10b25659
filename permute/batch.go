package permute

import "github.com/williamofai/ctrain/kernel"

// StepsPerEpoch returns ceil(N / batchSize): the number of training
// steps needed to cover the dataset once.
func (p *Permutation) StepsPerEpoch(batchSize int) (int, error) {
	const op = "permute.StepsPerEpoch"
	if batchSize <= 0 {
		return 0, kernel.Errorf(op, kernel.Dimension, "batchSize must be positive, got %d", batchSize)
	}
	n := int(p.N)
	return (n + batchSize - 1) / batchSize, nil
}

// Batch returns the permuted dataset indices for training step t, given
// batchSize. The last batch of an epoch (t mod stepsPerEpoch ==
// stepsPerEpoch-1) is truncated to whatever remains of the dataset when
// batchSize does not evenly divide N, rather than wrapping or padding.
func (p *Permutation) Batch(t uint64, batchSize int, faults *kernel.Faults) ([]uint32, error) {
	const op = "permute.Batch"
	spe, err := p.StepsPerEpoch(batchSize)
	if err != nil {
		return nil, kernel.Wrap(op, kernel.Dimension, err)
	}

	batchIdx := int(t % uint64(spe))
	start := batchIdx * batchSize
	count := batchSize
	if batchIdx == spe-1 {
		count = int(p.N) - (spe-1)*batchSize
	}

	indices := make([]uint32, count)
	for j := 0; j < count; j++ {
		indices[j] = p.Apply(uint32(start+j), faults)
	}
	return indices, nil
}
