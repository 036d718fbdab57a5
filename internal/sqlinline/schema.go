package sqlinline

// QEnsureSchema creates the tables this service writes to. It has no
// parameters so pgx sends it over the simple protocol as one batch.
const QEnsureSchema = `--sql 5b2e7c1a-94d3-4e6f-b0a8-7d1f2c3e4a59
create table if not exists integration_tokens (
  id          uuid primary key,
  provider    text not null unique,
  token       text not null,
  properties  jsonb not null default '{}'::jsonb,
  created_at  timestamptz not null default now(),
  updated_at  timestamptz not null default now()
);

create table if not exists generation_attempts (
  id           uuid primary key,
  design_id    text not null,
  view         text not null,
  provider     text not null,
  prompt_hash  text not null,
  input_kind   text not null,
  success      boolean not null,
  duration_ms  int not null,
  created_at   timestamptz not null
);

create index if not exists generation_attempts_created_at_idx
  on generation_attempts (created_at);
`
