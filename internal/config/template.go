package config

const configTemplate = `# aiwire configuration file
# Controls which provider backs each model capability and how clients connect.

ai:
  # Provider selected per capability (watsonx-ai or gemini).
  # Leave empty to use the first linked provider.
  model:
    chat: ""
    embedding: ""

  watsonx:
    base_url: https://us-south.ml.cloud.ibm.com/
    # project_id and iam_token are required when watsonx-ai is used
    # (prefer AIWIRE_AI_WATSONX_IAM_TOKEN environment variable)
    project_id: ""
    # iam_token: ${AIWIRE_AI_WATSONX_IAM_TOKEN}
    chat:
      options:
        model: google/flan-ul2
        temperature: 0.7
        # top_p: 1.0
        # top_k: 50
        # decoding_method: greedy
        # max_new_tokens: 20
        # stop_sequences: []
    embedding:
      options:
        model: ibm/slate-30m-english-rtrvr

  gemini:
    # API key (prefer GEMINI_API_KEY environment variable)
    # api_key: ${GEMINI_API_KEY}
    chat:
      options:
        model: gemini-2.5-flash
    embedding:
      options:
        model: gemini-embedding-001
        # dimensions: 768

# Observability settings
log_level: info  # debug, info, warn, error
`
