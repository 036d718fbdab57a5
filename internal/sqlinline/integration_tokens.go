package sqlinline

// QSelectIntegrationToken reads the stored credential for provider $1.
const QSelectIntegrationToken = `--sql 6a0f30fa-680c-4d45-a428-08acd7770833
select t.token
from integration_tokens t
where t.provider = lower($1::text)
  and t.token <> ''
limit 1;
`

// QUpsertIntegrationToken stores token $2 for provider $1. Properties $3 are
// merged into the existing ones so earlier keys survive a rotation.
const QUpsertIntegrationToken = `--sql e27aaf67-c3cb-4a20-8a56-08f84a257435
insert into integration_tokens as t (id, provider, token, properties)
values (gen_random_uuid(), lower($1::text), $2::text, coalesce($3::jsonb, '{}'::jsonb))
on conflict (provider) do update set
    token = excluded.token,
    properties = t.properties || excluded.properties,
    updated_at = now();
`
