package sqlinline

const QInsertGenerationAttempt = `--sql 3f0c9a57-6d1e-4b8a-9a52-0b7e4c1d2f63
insert into generation_attempts(
  id,
  design_id,
  view,
  provider,
  prompt_hash,
  input_kind,
  success,
  duration_ms,
  created_at
) values (
  gen_random_uuid(),
  $1::text,
  $2::text,
  $3::text,
  $4::text,
  $5::text,
  $6::boolean,
  $7::int,
  $8::timestamptz
);
`

const QGenerationStatsSince = `--sql 9c41e2d8-2b7a-4f0e-8d36-51a8f0e7b4c2
select
  provider,
  view,
  count(*)::int                                   as attempts,
  count(*) filter (where success)::int            as successes,
  coalesce(avg(duration_ms), 0)::float8           as avg_duration_ms
from generation_attempts
where created_at >= $1::timestamptz
group by provider, view
order by provider, view;
`
