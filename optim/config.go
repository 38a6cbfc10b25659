package optim

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/williamofai/ctrain/kernel"
)

const opLoadConfig = "optim.LoadConfig"

// fixedYAML is the YAML-visible representation of a kernel.Fixed: the
// config file carries decimal floats (this is the one place in the
// system floating point is permitted, since it never reaches the
// runtime kernel — LoadConfig converts every value to Q16.16 once, at
// load time, before anything is trained).
type fixedYAML float64

func (f fixedYAML) toFixed() kernel.Fixed {
	return kernel.Fixed(f * float64(kernel.ONE))
}

// SGDConfig mirrors the SGD recognized-options surface:
// {learning_rate, weight_decay}.
type SGDConfig struct {
	LearningRate fixedYAML `yaml:"learning_rate"`
	WeightDecay  fixedYAML `yaml:"weight_decay"`
}

// ToSGD builds the runtime SGD optimiser from the loaded config.
func (c SGDConfig) ToSGD() *SGD {
	return &SGD{LearningRate: c.LearningRate.toFixed(), WeightDecay: c.WeightDecay.toFixed()}
}

// SGDMomentumConfig mirrors SGD-momentum's surface: adds {momentum}.
type SGDMomentumConfig struct {
	LearningRate fixedYAML `yaml:"learning_rate"`
	WeightDecay  fixedYAML `yaml:"weight_decay"`
	Momentum     fixedYAML `yaml:"momentum"`
}

// ToSGDMomentum builds the runtime SGDMomentum optimiser.
func (c SGDMomentumConfig) ToSGDMomentum() *SGDMomentum {
	return &SGDMomentum{
		LearningRate: c.LearningRate.toFixed(),
		Momentum:     c.Momentum.toFixed(),
		WeightDecay:  c.WeightDecay.toFixed(),
	}
}

// AdamConfig mirrors Adam's surface: {eta, beta1, beta2, epsilon,
// weight_decay}, with defaults {0.01, 0.9, 0.999, DefaultAdamEpsilon, 0}.
type AdamConfig struct {
	LearningRate fixedYAML `yaml:"learning_rate"`
	Beta1        fixedYAML `yaml:"beta1"`
	Beta2        fixedYAML `yaml:"beta2"`
	Epsilon      fixedYAML `yaml:"epsilon"`
	WeightDecay  fixedYAML `yaml:"weight_decay"`
}

// defaultAdamConfig returns the standard Adam defaults.
func defaultAdamConfig() AdamConfig {
	return AdamConfig{LearningRate: 0.01, Beta1: 0.9, Beta2: 0.999, Epsilon: 0, WeightDecay: 0}
}

// ToAdam builds the runtime Adam optimiser for n parameters. An
// Epsilon of exactly 0 is replaced with DefaultAdamEpsilon, since the
// spec's ~1e-8 default is not representable as a nonzero Q16.16 value.
func (c AdamConfig) ToAdam(n int) *Adam {
	eps := c.Epsilon.toFixed()
	if eps == 0 {
		eps = DefaultAdamEpsilon
	}
	return NewAdam(c.LearningRate.toFixed(), c.Beta1.toFixed(), c.Beta2.toFixed(), eps, c.WeightDecay.toFixed(), n)
}

// StepConfig mirrors the step scheduler's surface: {initial_lr, gamma,
// step_size epochs}.
type StepConfig struct {
	InitialLR fixedYAML `yaml:"initial_lr"`
	Gamma     fixedYAML `yaml:"gamma"`
	StepSize  uint32    `yaml:"step_size"`
}

// ToScheduler builds the runtime Step scheduler.
func (c StepConfig) ToScheduler() Step {
	return Step{InitialLR: c.InitialLR.toFixed(), Gamma: c.Gamma.toFixed(), StepSizeEpochs: c.StepSize}
}

// WarmupConfig mirrors the warmup scheduler's surface: {target_lr,
// warmup_steps}.
type WarmupConfig struct {
	TargetLR    fixedYAML `yaml:"target_lr"`
	WarmupSteps uint64    `yaml:"warmup_steps"`
}

// ToScheduler builds the runtime Warmup scheduler.
func (c WarmupConfig) ToScheduler() Warmup {
	return Warmup{TargetLR: c.TargetLR.toFixed(), WarmupSteps: c.WarmupSteps}
}

// CosineConfig mirrors the cosine scheduler's surface: {initial_lr,
// min_lr, total_steps}.
type CosineConfig struct {
	InitialLR  fixedYAML `yaml:"initial_lr"`
	MinLR      fixedYAML `yaml:"min_lr"`
	TotalSteps uint64    `yaml:"total_steps"`
}

// ToScheduler builds the runtime Cosine scheduler.
func (c CosineConfig) ToScheduler() Cosine {
	return Cosine{InitialLR: c.InitialLR.toFixed(), MinLR: c.MinLR.toFixed(), TotalSteps: c.TotalSteps}
}

// Config is the top-level YAML document: exactly one of the optimiser
// fields and at most one scheduler field are expected to be populated;
// LoadConfig does not enforce mutual exclusion, leaving the choice of
// which optimiser/scheduler to instantiate to the caller.
type Config struct {
	SGD         *SGDConfig         `yaml:"sgd"`
	SGDMomentum *SGDMomentumConfig `yaml:"sgd_momentum"`
	Adam        *AdamConfig        `yaml:"adam"`

	Constant *fixedYAML    `yaml:"constant_lr"`
	Step     *StepConfig   `yaml:"step"`
	Warmup   *WarmupConfig `yaml:"warmup"`
	Cosine   *CosineConfig `yaml:"cosine"`
}

// LoadConfig parses a YAML document from r into a Config. When the adam
// section is present, its learning_rate, beta1 and beta2 default per
// defaultAdamConfig whenever they decode as 0, whether omitted or
// written as 0 (the decoder cannot tell the two apart). Every
// populated section is range-checked before being returned; an
// out-of-range value yields a kernel.Config-kind error rather than
// silently producing an optimiser or scheduler nobody asked for.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, kernel.Errorf(opLoadConfig, kernel.Config, "%s", fmt.Sprint(err))
	}
	if cfg.Adam != nil {
		defaults := defaultAdamConfig()
		if cfg.Adam.LearningRate == 0 {
			cfg.Adam.LearningRate = defaults.LearningRate
		}
		if cfg.Adam.Beta1 == 0 {
			cfg.Adam.Beta1 = defaults.Beta1
		}
		if cfg.Adam.Beta2 == 0 {
			cfg.Adam.Beta2 = defaults.Beta2
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateConfig range-checks every section actually present in cfg,
// per the recognized-options surface's documented ranges (e.g.
// 0 <= beta1, beta2 < 1 for Adam).
func validateConfig(cfg *Config) error {
	if c := cfg.SGD; c != nil {
		if c.LearningRate <= 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "sgd: learning_rate must be positive, got %v", c.LearningRate)
		}
		if c.WeightDecay < 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "sgd: weight_decay must be non-negative, got %v", c.WeightDecay)
		}
	}
	if c := cfg.SGDMomentum; c != nil {
		if c.LearningRate <= 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "sgd_momentum: learning_rate must be positive, got %v", c.LearningRate)
		}
		if c.WeightDecay < 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "sgd_momentum: weight_decay must be non-negative, got %v", c.WeightDecay)
		}
		if c.Momentum < 0 || c.Momentum >= 1 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "sgd_momentum: momentum must be in [0, 1), got %v", c.Momentum)
		}
	}
	if c := cfg.Adam; c != nil {
		if c.LearningRate <= 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "adam: learning_rate must be positive, got %v", c.LearningRate)
		}
		if c.Beta1 < 0 || c.Beta1 >= 1 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "adam: beta1 must be in [0, 1), got %v", c.Beta1)
		}
		if c.Beta2 < 0 || c.Beta2 >= 1 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "adam: beta2 must be in [0, 1), got %v", c.Beta2)
		}
		if c.Epsilon < 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "adam: epsilon must be non-negative, got %v", c.Epsilon)
		}
		if c.WeightDecay < 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "adam: weight_decay must be non-negative, got %v", c.WeightDecay)
		}
	}
	if c := cfg.Step; c != nil {
		if c.Gamma <= 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "step: gamma must be positive, got %v", c.Gamma)
		}
		if c.StepSize == 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "step: step_size must be positive, got %v", c.StepSize)
		}
	}
	if c := cfg.Warmup; c != nil {
		if c.WarmupSteps == 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "warmup: warmup_steps must be positive, got %v", c.WarmupSteps)
		}
	}
	if c := cfg.Cosine; c != nil {
		if c.TotalSteps == 0 {
			return kernel.Errorf(opLoadConfig, kernel.Config, "cosine: total_steps must be positive, got %v", c.TotalSteps)
		}
	}
	return nil
}
