package ai

import "errors"

// Generation outcomes the pipeline must tell apart. A policy refusal is a
// recognized, user-safe outcome; a config error means the operator has to fix
// credentials or the model name before retrying makes sense.
var (
	ErrPolicyRefusal = errors.New("answer declined by content-safety policy")
	ErrModelConfig   = errors.New("generative model configuration error")
	ErrEmptyResponse = errors.New("generative model returned no usable text")
)
